package job

import (
	"TaylorDAM/internal/pkg/consts"
	"TaylorDAM/internal/service"
	"context"
	log "log/slog"
	"time"
)

// PendingUploadCleanupJob 清理上传后一直未登记的对象
type PendingUploadCleanupJob struct {
	uploadSvc service.UploadService
	kv        service.KVStore
}

func NewPendingUploadCleanupJob(uploadSvc service.UploadService, kv service.KVStore) *PendingUploadCleanupJob {
	return &PendingUploadCleanupJob{
		uploadSvc: uploadSvc,
		kv:        kv,
	}
}

func (s *PendingUploadCleanupJob) Run() {
	runLocked("pending-upload", consts.PendingUploadCleanLock, s.kv, 10*time.Minute, func(ctx context.Context) error {
		count, err := s.uploadSvc.CleanupPending(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			log.InfoContext(ctx, "expired uploads removed", "cleaned_count", count)
		}
		return nil
	})
}
