package rediskv

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tmugisha/amali/core"
)

const opTimeout = 3 * time.Second

// Store is a redis-backed KeyValueStore for shared deployments where window
// records must survive a single process. The KeyValueStore contract is
// synchronous, so each call carries its own short timeout.
type Store struct {
	inner *redis.Client
}

var _ core.KeyValueStore = (*Store)(nil)

func Open(conf core.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Store{inner: client}, nil
}

func (s *Store) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := s.inner.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", core.ErrKeyNotFound
	}
	return val, err
}

func (s *Store) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.inner.Set(ctx, key, value, 0).Err()
}

func (s *Store) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.inner.Del(ctx, key).Err()
}

func (s *Store) Close() error {
	return s.inner.Close()
}
