package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"commons/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ErrLockLost is logged when a lease expired before release.
var ErrLockLost = errors.New("lock lease expired before release")

// RedisLocker is a lease lock shared by every process using the same Redis.
// A holder that outlives ttl loses the lease; ttl must exceed the longest
// critical section.
type RedisLocker struct {
	rdb   *redis.Client
	ttl   time.Duration
	retry time.Duration
}

// NewRedisLocker returns a locker with the given lease ttl.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: 10 * time.Millisecond}
}

func lockKey(key string) string { return "lock:" + key }

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	start := time.Now()
	token := uuid.NewString()
	k := lockKey(key)

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
	observeWait("redis", start)

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release must run even when the request context is gone.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := releaseScript.Run(ctx, l.rdb, []string{k}, token).Int()
			if err == nil && n == 0 {
				err = ErrLockLost
			}
			if err != nil {
				observability.LogAsyncOperationError(ctx, "lock_release", err, map[string]interface{}{"key": key})
			}
		})
	}, nil
}
