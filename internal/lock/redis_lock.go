package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL  = 5 * time.Minute
	defaultPollWait = 50 * time.Millisecond
)

// unlockScript deletes the key only while it still holds our token, so an
// expired lock taken over by another instance is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares chat locks between server instances using SET NX PX.
// The TTL bounds how long a crashed holder can block a chat; it must exceed
// the longest request (upstream timeout times retries plus backoff).
type RedisLocker struct {
	rdb      *redis.Client
	ttl      time.Duration
	pollWait time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, pollWait: defaultPollWait}
}

func (l *RedisLocker) lockKey(key string) string { return fmt.Sprintf("lock:chat:%s", key) }

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.lockKey(key)
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("could not acquire lock %s: %w", redisKey, err)
		}
		if ok {
			break
		}

		t := time.NewTimer(l.pollWait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled by now.
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := unlockScript.Run(releaseCtx, l.rdb, []string{redisKey}, token).Err(); err != nil {
				slog.Warn("Failed to release chat lock", "key", redisKey, "error", err)
			}
		})
	}, nil
}

// NewRedisClient builds a client from a redis:// URL or a bare host:port.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}
