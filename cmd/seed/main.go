// Command main seeds the database with demo groups.
package main

import (
	"context"
	"flag"
	"log"

	"commons/internal/bootstrap"
	"commons/internal/config"
	"commons/internal/seed"
)

func main() {
	fixturesPath := flag.String("fixtures", "", "YAML fixture file; generated data is used when empty")
	numGroups := flag.Int("groups", 20, "Number of groups to generate")
	numMembers := flag.Int("members", 8, "Members per generated group")
	numMessages := flag.Int("messages", 15, "Announcements per generated group")
	numUsers := flag.Int("users", 100, "Size of the user ID pool")
	moderator := flag.Uint("moderator", 1, "User ID recorded as the approving moderator")
	randSeed := flag.Int64("seed", 1, "Random seed for generated data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	svc := bootstrap.NewServices(cfg, db, rdb)

	var fixtures *seed.Fixtures
	if *fixturesPath != "" {
		fixtures, err = seed.LoadFixtures(*fixturesPath)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
	} else {
		fixtures = seed.NewFactory(*randSeed).Fixtures(seed.Options{
			Groups:           *numGroups,
			MembersPerGroup:  *numMembers,
			MessagesPerGroup: *numMessages,
			Users:            *numUsers,
			ModeratorID:      *moderator,
		})
	}

	sum, err := seed.NewSeeder(svc.Groups, svc.Messages).Apply(context.Background(), fixtures)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d groups, %d members, %d messages", sum.Groups, sum.Members, sum.Messages)
}
