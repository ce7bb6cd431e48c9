package redisstore

import (
	"context"
	"log/slog"
	"time"

	"cancel-saga/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "cancel-saga:lock:"

// Only the holder's token may release the lock; an expired lock taken over by another pass stays put.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type PassLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewPassLocker(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *PassLocker {
	return &PassLocker{client: client, ttl: ttl, logger: logger}
}

// TryLock never blocks. The lock expires after ttl so a crashed pass cannot wedge a store.
func (l *PassLocker) TryLock(ctx context.Context, key string) (func(), bool, error) {
	token := uuid.NewString()
	fullKey := lockPrefix + key

	ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, infra.NewUpstreamErr("redis", "lock "+key, "", err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func() {
		// The caller's ctx may already be cancelled when the pass ends.
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
			l.logger.Warn("failed to release pass lock", "key", key, "error", err)
		}
	}
	return unlock, true, nil
}
