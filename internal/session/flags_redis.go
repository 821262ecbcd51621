package session

import (
	"context"
	"errors"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// RedisFlags guarda los flags en Redis, para despliegues multi-nodo donde los
// requests de una misma sesión pueden aterrizar en instancias distintas.
type RedisFlags struct {
	c      *rdb.Client
	prefix string
	ttl    time.Duration
}

func NewRedisFlags(addr string, db int, prefix string, sessionTTL time.Duration) *RedisFlags {
	if prefix == "" {
		prefix = "coursegate:2fa:"
	}
	return &RedisFlags{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
		ttl:    sessionTTL,
	}
}

func (r *RedisFlags) Get(ctx context.Context, sessionID string) (bool, error) {
	_, err := r.c.Get(ctx, r.prefix+sessionID).Result()
	if errors.Is(err, rdb.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisFlags) Set(ctx context.Context, sessionID string) error {
	return r.c.Set(ctx, r.prefix+sessionID, "1", r.ttl).Err()
}

func (r *RedisFlags) Close() error { return r.c.Close() }
