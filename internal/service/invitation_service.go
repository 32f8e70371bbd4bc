package service

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/model"
	"TaylorDAM/internal/pkg/consts"
	"TaylorDAM/internal/pkg/mail"
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type InvitationService interface {
	CreateInvitation(ctx context.Context, actor Actor, dto *dto.CreateInvitationDTO) (*dto.CreateInvitationResultDTO, error)
	GetActiveInvitations(ctx context.Context) ([]*dto.InvitationDTO, error)
	RevokeInvitation(ctx context.Context, id string) error
	PreviewInvitation(ctx context.Context, token string) (*dto.InvitationPreviewDTO, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

type InvitationServiceImpl struct {
	invitationRepo repository.InvitationRepo
	userRepo       repository.UserRepo
	mailer         Mailer
	baseURL        string
	now            func() time.Time
}

func NewInvitationService(invitationRepo repository.InvitationRepo, userRepo repository.UserRepo, mailer Mailer, baseURL string) InvitationService {
	return &InvitationServiceImpl{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		mailer:         mailer,
		baseURL:        strings.TrimRight(baseURL, "/"),
		now:            time.Now,
	}
}

// validateInvitation 已使用优先于已过期
func validateInvitation(invitation *model.Invitation, now time.Time) error {
	if invitation == nil {
		return ErrInvitationInvalid
	}
	if invitation.UsedAt != nil {
		return ErrInvitationUsed
	}
	if !invitation.ExpiresAt.After(now) {
		return ErrInvitationExpired
	}
	return nil
}

// CreateInvitation 邮件发送失败不影响邀请创建，链接仍返回给管理员
func (s *InvitationServiceImpl) CreateInvitation(ctx context.Context, actor Actor, invDTO *dto.CreateInvitationDTO) (*dto.CreateInvitationResultDTO, error) {
	if !model.ValidRole(invDTO.Role) {
		return nil, ErrParamInvalid
	}
	inviterID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	inviter, err := s.userRepo.GetUserById(ctx, inviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, ErrUnauthorized
	}

	now := s.now()
	invitation := &model.Invitation{
		Email:     normalizeEmail(invDTO.Email),
		Token:     uuid.NewString(),
		Role:      invDTO.Role,
		InvitedBy: inviter.ID,
		ExpiresAt: now.Add(consts.InvitationTTLDays * 24 * time.Hour),
	}
	if err = s.invitationRepo.CreateInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	baseURL := s.baseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(util.BaseURL(ctx), "/")
	}
	inviteURL := fmt.Sprintf("%s/register/%s", baseURL, invitation.Token)
	sent, err := s.mailer.SendInvitation(ctx, &mail.InvitationData{
		Email:       invitation.Email,
		InviterName: inviter.Name,
		Role:        invitation.Role,
		InviteURL:   inviteURL,
		ExpiresAt:   invitation.ExpiresAt,
	})
	if err != nil {
		log.WarnContext(ctx, "invitation email delivery failed",
			"invitation_id", invitation.ID.String(), "err", err)
		sent = false
	}

	invitationDTO, err := toInvitationDTO(&model.InvitationWithInviter{
		Invitation:   *invitation,
		InviterName:  inviter.Name,
		InviterEmail: inviter.Email,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateInvitationResultDTO{
		Invitation: invitationDTO,
		InviteURL:  inviteURL,
		EmailSent:  sent,
	}, nil
}

func (s *InvitationServiceImpl) GetActiveInvitations(ctx context.Context) ([]*dto.InvitationDTO, error) {
	rows, err := s.invitationRepo.GetActiveInvitations(ctx, s.now())
	if err != nil {
		return nil, err
	}
	result := make([]*dto.InvitationDTO, 0, len(rows))
	for _, row := range rows {
		item, err := toInvitationDTO(row)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *InvitationServiceImpl) RevokeInvitation(ctx context.Context, id string) error {
	invitationID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvitationNotFound
	}
	affected, err := s.invitationRepo.DeleteInvitation(ctx, invitationID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// PreviewInvitation 注册页在提交前校验 token
func (s *InvitationServiceImpl) PreviewInvitation(ctx context.Context, token string) (*dto.InvitationPreviewDTO, error) {
	invitation, err := s.invitationRepo.GetInvitationByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	if err = validateInvitation(invitation, s.now()); err != nil {
		return nil, err
	}
	return &dto.InvitationPreviewDTO{
		Email:     invitation.Email,
		Role:      invitation.Role,
		ExpiresAt: invitation.ExpiresAt,
	}, nil
}

func (s *InvitationServiceImpl) CleanupExpired(ctx context.Context) (int64, error) {
	return s.invitationRepo.DeleteExpiredInvitations(ctx, s.now())
}
