package minio

import (
	"TaylorDAM/internal/api/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

var ErrClientNotInitialized = errors.New("minio client is not initialized")

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", ErrClientNotInitialized
	}

	uploadInfo, err := Client.PutObject(ctx, Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// PresignPut 生成浏览器直传使用的 PUT 链接
func PresignPut(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if PresignClient == nil {
		return "", ErrClientNotInitialized
	}

	u, err := PresignClient.PresignedPutObject(ctx, Bucket, objectName, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return u.String(), nil
}

// StatFile 返回对象大小与类型，对象不存在时 found 为 false
func StatFile(ctx context.Context, objectName string) (size int64, contentType string, found bool, err error) {
	if Client == nil {
		return 0, "", false, ErrClientNotInitialized
	}

	info, err := Client.StatObject(ctx, Bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, "", false, nil
		}
		return 0, "", false, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Size, info.ContentType, true, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return ErrClientNotInitialized
	}

	err := Client.RemoveObject(ctx, Bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	return publicBase(config.Cfg.MinIO) + objectName
}

// ObjectKeyFromURL 从公共 URL 反解对象 key，不属于本存储桶时返回 false
func ObjectKeyFromURL(rawURL string) (string, bool) {
	return objectKeyFromURL(config.Cfg.MinIO, rawURL)
}

func publicBase(cfg config.MinIOConfig) string {
	scheme := "http"
	if cfg.ExternalUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/", scheme, cfg.ExternalEndpoint, cfg.Bucket)
}

func objectKeyFromURL(cfg config.MinIOConfig, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != cfg.ExternalEndpoint {
		return "", false
	}
	prefix := "/" + cfg.Bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
