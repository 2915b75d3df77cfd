// Package service implements the group subsystem's business rules: the
// lifecycle manager, the membership ledger and the message channel.
//
// Every mutation follows the same shape: take the group's lock, open a
// transaction, load a snapshot with the group row locked, evaluate the
// permission table, apply, commit. Events and cache invalidation happen after
// commit and never fail the call.
package service

import (
	"context"
	"time"

	"commons/internal/cache"
	"commons/internal/lock"
	"commons/internal/models"
	"commons/internal/notifications"
	"commons/internal/observability"
	"commons/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// EventPublisher hands committed changes to the delivery layer.
// *notifications.Notifier satisfies it.
type EventPublisher interface {
	PublishUser(ctx context.Context, userID uint, ev notifications.Event) error
	PublishGroupEvent(ctx context.Context, ev notifications.Event) error
	PublishGroupMessage(ctx context.Context, ev notifications.Event) error
}

type deps struct {
	repo       repository.GroupRepository
	locker     lock.Locker
	cache      *cache.Store
	events     EventPublisher
	now        func() time.Time
	listingTTL time.Duration
	pageSize   int
	log        *observability.GroupLogger
}

// Option configures a GroupService or MessageChannel.
type Option func(*deps)

// WithCache enables the Redis listing cache.
func WithCache(store *cache.Store) Option {
	return func(d *deps) { d.cache = store }
}

// WithEvents sets the publisher for committed changes.
func WithEvents(p EventPublisher) Option {
	return func(d *deps) { d.events = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

// WithListingTTL sets how long discovery listings stay cached.
func WithListingTTL(ttl time.Duration) Option {
	return func(d *deps) {
		if ttl > 0 {
			d.listingTTL = ttl
		}
	}
}

// WithPageSize sets the default message page size.
func WithPageSize(n int) Option {
	return func(d *deps) {
		if n > 0 {
			d.pageSize = min(n, MaxPageSize)
		}
	}
}

func newDeps(repo repository.GroupRepository, locker lock.Locker, component string, opts []Option) deps {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	d := deps{
		repo:       repo,
		locker:     locker,
		now:        time.Now,
		listingTTL: cache.ListingTTL,
		pageSize:   DefaultPageSize,
		log:        observability.NewGroupLogger(component),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// begin opens a span and latency tracker for op. The returned func records
// the outcome and must be called with the operation's final error.
func (d *deps) begin(ctx context.Context, op string, groupID, actorID uint) (context.Context, func(error)) {
	span, ctx := observability.StartSpan(ctx, "group."+op,
		attribute.Int64("group.id", int64(groupID)),
		attribute.Int64("actor.id", int64(actorID)),
	)
	track := observability.TrackGroupOperation(op)
	return ctx, func(err error) {
		result := "ok"
		if err != nil {
			result = models.Code(err)
			if result == models.CodeInternal {
				span.SetError(err)
				d.log.LogError(ctx, groupID, op, err)
			} else {
				d.log.LogDenied(ctx, groupID, actorID, op, result)
			}
		}
		track(result)
		span.End()
	}
}

// inGroup runs fn under the given lock keys and inside one transaction with a
// freshly loaded, row-locked snapshot of the group.
func (d *deps) inGroup(ctx context.Context, groupID uint, keys []string, fn func(tx repository.GroupRepository, snap *GroupSnapshot) error) error {
	release, err := lock.AcquireAll(ctx, d.locker, keys...)
	if err != nil {
		return err
	}
	defer release()

	return d.repo.Transaction(ctx, func(tx repository.GroupRepository) error {
		snap, err := loadSnapshot(ctx, tx, groupID)
		if err != nil {
			return err
		}
		return fn(tx, snap)
	})
}

func (d *deps) event(typ string, groupID, actorID uint, payload map[string]interface{}) notifications.Event {
	return notifications.Event{
		Type:       typ,
		GroupID:    groupID,
		ActorID:    actorID,
		OccurredAt: d.now().UTC(),
		Payload:    payload,
	}
}

// publishGroup records and publishes a committed group event.
func (d *deps) publishGroup(ctx context.Context, ev notifications.Event) {
	d.log.LogEvent(ctx, ev.GroupID, ev.Type, ev.Payload)
	if d.events == nil {
		return
	}
	if err := d.events.PublishGroupEvent(ctx, ev); err != nil {
		observability.LogAsyncOperationError(ctx, "publish_group_event", err, map[string]interface{}{
			"group_id": ev.GroupID,
			"event":    ev.Type,
		})
	}
}

func (d *deps) publishUser(ctx context.Context, userID uint, ev notifications.Event) {
	if d.events == nil {
		return
	}
	if err := d.events.PublishUser(ctx, userID, ev); err != nil {
		observability.LogAsyncOperationError(ctx, "publish_user_event", err, map[string]interface{}{
			"user_id": userID,
			"event":   ev.Type,
		})
	}
}

// invalidateListings orphans every cached discovery listing and the group's
// cached record.
func (d *deps) invalidateListings(ctx context.Context, groupID uint) {
	d.cache.BumpVersion(ctx, cache.ListingNamespace)
	d.cache.BumpVersion(ctx, cache.GroupNamespace(groupID))
}
