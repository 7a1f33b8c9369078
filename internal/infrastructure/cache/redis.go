package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the startup connectivity check; a slow or absent redis
// fails fast instead of hanging boot.
const pingTimeout = 5 * time.Second

// OpenRedis connects the idempotency store and verifies it is reachable.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}
