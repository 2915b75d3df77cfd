// Package bootstrap connects the runtime dependencies shared by the server and
// the command-line tools.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"commons/internal/cache"
	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/lock"
	"commons/internal/middleware"
	"commons/internal/notifications"
	"commons/internal/repository"
	"commons/internal/seed"
	"commons/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// FixturesPath, when set, seeds the database from a YAML fixture file.
	FixturesPath string
}

// InitRuntime connects to the database and Redis and optionally seeds
// fixtures. Redis is optional: a nil client means the process runs without
// cache, distributed locks or event delivery.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb, err := cache.InitRedis(cfg.RedisURL)
	if err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without it", slog.String("error", err.Error()))
		rdb = nil
	}

	if opts.FixturesPath != "" {
		fixtures, err := seed.LoadFixtures(opts.FixturesPath)
		if err != nil {
			return nil, nil, err
		}
		svc := NewServices(cfg, db, rdb)
		if _, err := seed.NewSeeder(svc.Groups, svc.Messages).Apply(context.Background(), fixtures); err != nil {
			return nil, nil, fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	return db, rdb, nil
}

// Services are the group subsystem's entry points.
type Services struct {
	Groups   *service.GroupService
	Messages *service.MessageChannel
	Notifier *notifications.Notifier
}

// NewLocker picks the critical-section backend. The redis backend needs a
// live client and falls back to the in-process lock without one.
func NewLocker(cfg *config.Config, rdb *redis.Client) lock.Locker {
	if cfg.LockBackend == "redis" {
		if rdb != nil {
			return lock.NewRedisLocker(rdb, time.Duration(cfg.LockTTLSeconds)*time.Second)
		}
		middleware.Logger.Warn("LOCK_BACKEND=redis but redis is unavailable; using in-process locks")
	}
	return lock.NewLocalLocker()
}

// NewServices wires the group services on db. Both services share one locker
// so group and message critical sections exclude each other.
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Services {
	repo := repository.NewGroupRepository(db)
	locker := NewLocker(cfg, rdb)
	notifier := notifications.NewNotifier(rdb)

	opts := []service.Option{
		service.WithEvents(notifier),
		service.WithPageSize(cfg.MessagePageSize),
		service.WithListingTTL(time.Duration(cfg.ListingCacheTTLSeconds) * time.Second),
	}
	if rdb != nil {
		opts = append(opts, service.WithCache(cache.NewStore(rdb)))
	}

	return &Services{
		Groups:   service.NewGroupService(repo, locker, opts...),
		Messages: service.NewMessageChannel(repo, locker, opts...),
		Notifier: notifier,
	}
}
