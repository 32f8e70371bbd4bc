package service

import (
	"TaylorDAM/internal/model"
	"TaylorDAM/internal/pkg/mail"
	"context"
	"io"
	"time"
)

// BlobStorage 对象存储，由 minio.Storage 实现
type BlobStorage interface {
	PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}

// KVStore 缓存与锁，由 redis.Store 实现
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	SetEX(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	HSet(ctx context.Context, key, field, value string) error
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	TryLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	UnLock(ctx context.Context, key, value string)
}

// Mailer 邀请邮件投递，由 mail.Client 实现
type Mailer interface {
	SendInvitation(ctx context.Context, data *mail.InvitationData) (bool, error)
}

// Actor 当前请求的用户
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}
