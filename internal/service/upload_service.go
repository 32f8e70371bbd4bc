package service

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/pkg/consts"
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/repository"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type UploadService interface {
	PresignUpload(ctx context.Context, actor Actor, dto *dto.PresignUploadDTO) (*dto.PresignResultDTO, error)
	UploadFile(ctx context.Context, actor Actor, filename string, file io.ReadSeeker, size int64) (*dto.UploadResultDTO, error)
	CleanupPending(ctx context.Context) (int, error)
}

// UploadOptions 上传限制
type UploadOptions struct {
	MaxSize       int64
	PresignExpiry time.Duration
	PendingTTL    time.Duration
}

type UploadServiceImpl struct {
	storage   BlobStorage
	kv        KVStore
	mediaRepo repository.MediaRepo
	opts      UploadOptions
	now       func() time.Time
}

func NewUploadService(storage BlobStorage, kv KVStore, mediaRepo repository.MediaRepo, opts UploadOptions) UploadService {
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = 15 * time.Minute
	}
	if opts.PendingTTL <= 0 {
		opts.PendingTTL = 24 * time.Hour
	}
	return &UploadServiceImpl{
		storage:   storage,
		kv:        kv,
		mediaRepo: mediaRepo,
		opts:      opts,
		now:       time.Now,
	}
}

// PresignUpload 校验文件后签发直传链接，同时记录待登记对象
func (s *UploadServiceImpl) PresignUpload(ctx context.Context, actor Actor, presignDTO *dto.PresignUploadDTO) (*dto.PresignResultDTO, error) {
	if s.opts.MaxSize > 0 && presignDTO.FileSize > s.opts.MaxSize {
		return nil, ErrFileTooLarge
	}
	if !util.IsAllowedExtension(util.FileExt(presignDTO.Filename)) || !util.IsAllowedContentType(presignDTO.ContentType) {
		return nil, ErrFileNotSupported
	}

	now := s.now()
	key := util.BuildObjectKey(actor.ID, presignDTO.Filename, now)
	uploadURL, err := s.storage.PresignPut(ctx, key, s.opts.PresignExpiry)
	if err != nil {
		return nil, err
	}

	mimeType := strings.ToLower(strings.TrimSpace(strings.Split(presignDTO.ContentType, ";")[0]))
	err = s.markPending(ctx, key, &dto.PendingUploadMetadata{
		OwnerID:   actor.ID,
		MimeType:  mimeType,
		FileSize:  presignDTO.FileSize,
		CreatedAt: now.Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.PresignResultDTO{
		UploadURL: uploadURL,
		Method:    http.MethodPut,
		Pathname:  key,
		BlobURL:   s.storage.PublicURL(key),
		ExpiresAt: now.Add(s.opts.PresignExpiry),
	}, nil
}

// UploadFile 服务端中转上传，按文件头判断类型，图片额外生成缩略图
func (s *UploadServiceImpl) UploadFile(ctx context.Context, actor Actor, filename string, file io.ReadSeeker, size int64) (*dto.UploadResultDTO, error) {
	if s.opts.MaxSize > 0 && size > s.opts.MaxSize {
		return nil, ErrFileTooLarge
	}
	if !util.IsAllowedExtension(util.FileExt(filename)) {
		return nil, ErrFileNotSupported
	}
	contentType, err := util.GetSafeContentType(file)
	if err != nil {
		return nil, err
	}
	if !util.IsMediaContentType(contentType) {
		return nil, ErrFileNotSupported
	}

	now := s.now()
	key := util.BuildObjectKey(actor.ID, filename, now)
	if err = s.storage.Put(ctx, key, file, size, contentType); err != nil {
		return nil, err
	}

	result := &dto.UploadResultDTO{
		BlobURL:  s.storage.PublicURL(key),
		Pathname: key,
		MimeType: contentType,
		FileSize: size,
	}

	meta := &dto.PendingUploadMetadata{
		OwnerID:   actor.ID,
		MimeType:  contentType,
		FileSize:  size,
		CreatedAt: now.Unix(),
	}
	if strings.HasPrefix(contentType, consts.MimePrefixImage) {
		if thumbKey, ok := s.storeThumbnail(ctx, key, file); ok {
			thumbURL := s.storage.PublicURL(thumbKey)
			result.ThumbnailURL = &thumbURL
			meta.ThumbnailKey = thumbKey
		}
	}

	if err = s.markPending(ctx, key, meta); err != nil {
		return nil, err
	}
	return result, nil
}

// storeThumbnail 缩略图失败只记录日志，不影响原图上传
func (s *UploadServiceImpl) storeThumbnail(ctx context.Context, key string, file io.ReadSeeker) (string, bool) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", false
	}
	thumb, err := util.MakeThumbnail(file, consts.ThumbnailWidth)
	if err != nil {
		log.DebugContext(ctx, "thumbnail skipped", "key", key, "err", err)
		return "", false
	}

	thumbKey := util.ThumbnailKey(key)
	if err = s.storage.Put(ctx, thumbKey, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg"); err != nil {
		log.WarnContext(ctx, "failed to store thumbnail", "key", thumbKey, "err", err)
		return "", false
	}
	return thumbKey, true
}

func (s *UploadServiceImpl) markPending(ctx context.Context, key string, meta *dto.PendingUploadMetadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return s.kv.HSet(ctx, consts.MediaPendingKey, key, string(payload))
}

// CleanupPending 删除超时未登记的对象及其缩略图
func (s *UploadServiceImpl) CleanupPending(ctx context.Context) (int, error) {
	pending, err := s.kv.HGetAll(ctx, consts.MediaPendingKey)
	if err != nil {
		return 0, err
	}

	deadline := s.now().Add(-s.opts.PendingTTL).Unix()
	count := 0
	for key, val := range pending {
		var meta dto.PendingUploadMetadata
		if err := json.Unmarshal([]byte(val), &meta); err != nil {
			log.WarnContext(ctx, "invalid pending upload metadata", "key", key)
			_ = s.kv.HDel(ctx, consts.MediaPendingKey, key)
			continue
		}
		if meta.CreatedAt > deadline {
			continue
		}

		// 登记时清理 pending 失败的对象已被引用，只删除 pending 记录
		registered, err := s.mediaRepo.GetMediaByBlobURL(ctx, s.storage.PublicURL(key))
		if err != nil {
			log.ErrorContext(ctx, "failed to check upload registration", "key", key, "err", err)
			continue
		}
		if registered != nil {
			if err = s.kv.HDel(ctx, consts.MediaPendingKey, key); err != nil {
				log.ErrorContext(ctx, "failed to remove pending upload entry", "key", key, "err", err)
			}
			continue
		}

		if err = s.storage.Remove(ctx, key); err != nil {
			log.ErrorContext(ctx, "failed to delete expired upload", "key", key, "err", err)
			continue
		}
		if meta.ThumbnailKey != "" {
			if err = s.storage.Remove(ctx, meta.ThumbnailKey); err != nil {
				log.WarnContext(ctx, "failed to delete expired thumbnail", "key", meta.ThumbnailKey, "err", err)
			}
		}
		if err = s.kv.HDel(ctx, consts.MediaPendingKey, key); err != nil {
			log.ErrorContext(ctx, "failed to remove pending upload entry", "key", key, "err", err)
		}

		count++
		log.InfoContext(ctx, "cleanup expired upload", "key", key, "mime", meta.MimeType)
	}
	return count, nil
}
