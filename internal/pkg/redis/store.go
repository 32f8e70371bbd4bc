package redis

import (
	"context"
	"time"
)

// Store 以对象形式暴露包级函数，供 service 层依赖注入
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return GetValue(ctx, key)
}

func (s *Store) SetEX(ctx context.Context, key string, value string, ttl time.Duration) error {
	return SetWithExpiration(ctx, key, value, ttl)
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	return DeleteKey(ctx, keys...)
}

func (s *Store) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return IncrWithExpiration(ctx, key, ttl)
}

func (s *Store) HSet(ctx context.Context, key, field, value string) error {
	return HSet(ctx, key, field, value)
}

func (s *Store) HGet(ctx context.Context, key, field string) (string, error) {
	return HGet(ctx, key, field)
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return HGetAll(ctx, key)
}

func (s *Store) HDel(ctx context.Context, key string, fields ...string) error {
	return HDel(ctx, key, fields...)
}

func (s *Store) TryLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return TryLock(ctx, key, value, ttl, 1)
}

func (s *Store) UnLock(ctx context.Context, key, value string) {
	UnLock(ctx, key, value)
}
