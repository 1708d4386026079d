package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps entries under versioned keys. Invalidate bumps the namespace
// version so older entries become unreachable and expire on their own.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl, prefix: "yard"}
}

func (r *Redis) versionKey(namespace string) string {
	return fmt.Sprintf("%s:%s:version", r.prefix, namespace)
}

func (r *Redis) dataKey(namespace string, gen Generation, key string) string {
	return fmt.Sprintf("%s:%s:%d:%s", r.prefix, namespace, gen, key)
}

func (r *Redis) Get(ctx context.Context, namespace, key string, dest any) (Generation, bool, error) {
	version, err := r.rdb.Get(ctx, r.versionKey(namespace)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, false, err
	}
	gen := Generation(version)

	data, err := r.rdb.Get(ctx, r.dataKey(namespace, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, err
	}
	return gen, true, json.Unmarshal(data, dest)
}

// Set writes under gen. After an Invalidate that key is never read again.
func (r *Redis) Set(ctx context.Context, namespace string, gen Generation, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.dataKey(namespace, gen, key), data, r.ttl).Err()
}

func (r *Redis) Invalidate(ctx context.Context, namespace string) error {
	return r.rdb.Incr(ctx, r.versionKey(namespace)).Err()
}
