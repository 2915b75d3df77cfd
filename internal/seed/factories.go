package seed

import (
	"strings"

	"commons/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var categories = []string{
	"environment", "education", "health", "housing", "food-security",
	"animal-welfare", "arts", "youth", "elderly-care", "disaster-relief",
}

// Factory builds random fixtures for demo environments.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. The same seed yields the same fixtures.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// Options size a generated dataset.
type Options struct {
	Groups           int
	MembersPerGroup  int
	MessagesPerGroup int
	// Users are drawn from ids 1..Users.
	Users       int
	ModeratorID uint
}

func (f *Factory) userID(n int) uint {
	return uint(f.faker.Number(1, max(n, 1)))
}

// Group builds one approved group fixture.
func (f *Factory) Group(opts Options) GroupFixture {
	creator := f.userID(opts.Users)
	g := GroupFixture{
		Name:        strings.TrimSpace(f.faker.Company() + " " + f.faker.RandomString([]string{"Volunteers", "Circle", "Collective", "Network", "Crew"})),
		Description: f.faker.Paragraph(1, 3, 12, " "),
		Category:    f.faker.RandomString(categories),
		City:        f.faker.City(),
		Tags:        []string{f.faker.Word(), f.faker.Word()},
		Visibility:  "public",
		MaxMembers:  min(max(opts.MembersPerGroup+5, 10), models.MaxGroupMembers),
		CreatorID:   creator,
		Decision:    "approve",
	}
	if f.faker.Bool() {
		g.MemberInvites = true
	}

	seen := map[uint]bool{creator: true}
	for len(g.Members) < opts.MembersPerGroup && len(seen) < opts.Users {
		id := f.userID(opts.Users)
		if seen[id] {
			continue
		}
		seen[id] = true
		g.Members = append(g.Members, id)
	}
	if len(g.Members) > 0 {
		g.Admins = []uint{g.Members[0]}
	}
	for range opts.MessagesPerGroup {
		g.Messages = append(g.Messages, f.faker.Sentence(f.faker.Number(4, 16)))
	}
	return g
}

// Fixtures builds a full random dataset.
func (f *Factory) Fixtures(opts Options) *Fixtures {
	out := &Fixtures{ModeratorID: opts.ModeratorID}
	for range opts.Groups {
		out.Groups = append(out.Groups, f.Group(opts))
	}
	return out
}
