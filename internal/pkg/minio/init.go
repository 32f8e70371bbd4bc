package minio

import (
	"TaylorDAM/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例（内网）
	Client *minio.Client
	// PresignClient 预签名专用客户端，签名中的 Host 必须是浏览器可访问的外网地址
	PresignClient *minio.Client
	// Bucket 媒体存储桶
	Bucket string
)

// Init 初始化 MinIO 客户端并确保存储桶存在
func Init() error {
	cfg := config.Cfg.MinIO

	endpoint, useSSL := cfg.InternalEndpoint, cfg.InternalUseSSL
	if endpoint == "" {
		endpoint, useSSL = cfg.ExternalEndpoint, cfg.ExternalUseSSL
	}

	client, err := newClient(endpoint, useSSL, cfg)
	if err != nil {
		return err
	}

	presignClient := client
	if cfg.ExternalEndpoint != "" && cfg.ExternalEndpoint != endpoint {
		if presignClient, err = newClient(cfg.ExternalEndpoint, cfg.ExternalUseSSL, cfg); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if err = ensureBucket(ctx, client, cfg.Bucket); err != nil {
		return err
	}

	Client = client
	PresignClient = presignClient
	Bucket = cfg.Bucket
	return nil
}

func newClient(endpoint string, useSSL bool, cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		// 固定 region，避免预签名时向外网地址发起 GetBucketLocation 请求
		Region: "us-east-1",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}
	return client, nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		log.Info("created media bucket", "bucket", bucket)
	}

	// 媒体与缩略图允许匿名读取，与公开 blob 链接保持一致
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%[1]s/media/*","arn:aws:s3:::%[1]s/thumbnails/*"]}]}`, bucket)
	if err = client.SetBucketPolicy(ctx, bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}
