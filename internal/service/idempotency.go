package service

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type replayEntry struct {
	result *SendMessageResult
	err    error
}

// replayCache remembers recent outcomes by Idempotency-Key so that a client
// retrying the same submission does not create a second exchange.
type replayCache struct {
	c *cache.Cache
}

func newReplayCache(ttl time.Duration) *replayCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &replayCache{c: cache.New(ttl, 2*ttl)}
}

func replayKey(userID, chatID, key string) string {
	return userID + "\x00" + chatID + "\x00" + key
}

func (r *replayCache) get(userID, chatID, key string) (replayEntry, bool) {
	if key == "" {
		return replayEntry{}, false
	}
	v, ok := r.c.Get(replayKey(userID, chatID, key))
	if !ok {
		return replayEntry{}, false
	}
	return v.(replayEntry), true
}

func (r *replayCache) put(userID, chatID, key string, result *SendMessageResult, err error) {
	if key == "" {
		return
	}
	r.c.SetDefault(replayKey(userID, chatID, key), replayEntry{result: result, err: err})
}
