// Package lock provides per-key mutual exclusion for group mutations.
package lock

import (
	"context"
	"fmt"
	"time"

	"commons/internal/observability"
)

// Locker serialises work on a key. Acquire blocks until the key is held or
// ctx is done; the returned release func must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// MembersKey guards a group's membership and lifecycle state.
func MembersKey(groupID uint) string { return fmt.Sprintf("group:%d:members", groupID) }

// MessagesKey guards a group's message sequence.
func MessagesKey(groupID uint) string { return fmt.Sprintf("group:%d:messages", groupID) }

// AcquireAll takes keys in the given order and releases in reverse. Callers
// must pass keys in one global order to avoid deadlock.
func AcquireAll(ctx context.Context, l Locker, keys ...string) (func(), error) {
	releases := make([]func(), 0, len(keys))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, key := range keys {
		release, err := l.Acquire(ctx, key)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}

func observeWait(backend string, start time.Time) {
	observability.GroupLockWait.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}
