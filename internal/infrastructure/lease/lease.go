package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
)

// releaseScript deletes the key only while it still holds our token.
//
//nolint:gochecknoglobals
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease is a cluster-wide mutual exclusion with expiry, so that only one
// replica runs a periodic job at a time.
type RedisLease struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisLease(client *redis.Client, key string, ttl time.Duration) *RedisLease {
	return &RedisLease{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Acquire takes the lease if it is free. The returned release func must be
// called when the work is done; it is a no-op when the lease has expired and
// was taken by someone else meanwhile.
func (l *RedisLease) Acquire(ctx context.Context) (func(context.Context) error, bool, error) {
	token := xid.New().String()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("client.SetNX: %w", err)
	}

	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			return fmt.Errorf("releaseScript.Run: %w", err)
		}

		return nil
	}

	return release, true, nil
}
