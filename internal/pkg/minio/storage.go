package minio

import (
	"context"
	"io"
	"time"
)

// Storage 以对象形式暴露包级函数，供 service 层依赖注入
type Storage struct{}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return PresignPut(ctx, key, expiry)
}

func (s *Storage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := UploadFile(ctx, key, reader, size, contentType)
	return err
}

func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, _, found, err := StatFile(ctx, key)
	return found, err
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return DeleteFile(ctx, key)
}

func (s *Storage) PublicURL(key string) string {
	return GetPublicURL(key)
}

func (s *Storage) KeyFromURL(rawURL string) (string, bool) {
	return ObjectKeyFromURL(rawURL)
}
