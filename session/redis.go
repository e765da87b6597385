package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"
	"github.com/tbxark/docform/form"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// TTL is refreshed on every Save; zero keeps sessions forever.
	TTL time.Duration
}

// RedisBackend stores sessions as JSON. Abandoned sessions expire after the TTL.
type RedisBackend struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisBackend connects and pings the server.
func NewRedisBackend(ctx context.Context, opts RedisOptions) (*RedisBackend, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisBackend{rdb: rdb, ttl: opts.TTL}, nil
}

func (b *RedisBackend) Save(ctx context.Context, key string, s *form.Session) error {
	raw, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.rdb.Set(ctx, key, raw, b.ttl).Err()
}

func (b *RedisBackend) Load(ctx context.Context, key string) (*form.Session, error) {
	raw, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s form.Session
	if err := sonic.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &s, nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return b.rdb.Del(ctx, key).Err()
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
