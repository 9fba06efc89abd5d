package kvstore

import (
	"context"
	"errors"
	"time"

	pkgredis "github.com/FuadAliah/celtis-pos/pkg/redis"
)

// RedisClient is the part of pkg/redis.Client the redis medium needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Key(parts ...string) string
}

// Redis stores every slot as a plain string key under the pos namespace.
type Redis struct {
	client RedisClient
}

func NewRedis(client RedisClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.client.Key(key))
	if errors.Is(err, pkgredis.ErrNil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.Key(key), value, 0)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.Key(key))
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
