package job

import (
	"TaylorDAM/internal/pkg/consts"
	"TaylorDAM/internal/service"
	"context"
	log "log/slog"
	"time"
)

// InvitationCleanupJob 删除已过期且未使用的邀请
type InvitationCleanupJob struct {
	invitationSvc service.InvitationService
	kv            service.KVStore
}

func NewInvitationCleanupJob(invitationSvc service.InvitationService, kv service.KVStore) *InvitationCleanupJob {
	return &InvitationCleanupJob{
		invitationSvc: invitationSvc,
		kv:            kv,
	}
}

func (s *InvitationCleanupJob) Run() {
	runLocked("invitation", consts.InvitationCleanLock, s.kv, 5*time.Minute, func(ctx context.Context) error {
		count, err := s.invitationSvc.CleanupExpired(ctx)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "expired invitations removed", "cleaned_count", count)
		return nil
	})
}
