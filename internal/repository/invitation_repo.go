package repository

import (
	"TaylorDAM/internal/model"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepo interface {
	CreateInvitation(ctx context.Context, invitation *model.Invitation) error
	GetInvitationById(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetActiveInvitations(ctx context.Context, now time.Time) ([]*model.InvitationWithInviter, error)
	DeleteInvitation(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error)
	AcceptInvitation(ctx context.Context, invitationID uuid.UUID, user *model.User, now time.Time) error
}

type invitationRepoImpl struct {
	db *gorm.DB
}

func NewInvitationRepo(db *gorm.DB) InvitationRepo {
	return &invitationRepoImpl{db: db}
}

func (s *invitationRepoImpl) CreateInvitation(ctx context.Context, invitation *model.Invitation) error {
	return s.db.WithContext(ctx).Create(invitation).Error
}

func (s *invitationRepoImpl) GetInvitationById(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (s *invitationRepoImpl) GetInvitationByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

// GetActiveInvitations 未使用且未过期的邀请，附带邀请人信息
func (s *invitationRepoImpl) GetActiveInvitations(ctx context.Context, now time.Time) ([]*model.InvitationWithInviter, error) {
	rows := make([]*model.InvitationWithInviter, 0)
	err := s.db.WithContext(ctx).
		Table("invitations i").
		Select("i.*, u.name AS inviter_name, u.email AS inviter_email").
		Joins("JOIN users u ON u.id = i.invited_by").
		Where("i.used_at IS NULL AND i.expires_at > ?", now).
		Order("i.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *invitationRepoImpl) DeleteInvitation(ctx context.Context, id uuid.UUID) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Invitation{})
	return result.RowsAffected, result.Error
}

func (s *invitationRepoImpl) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ? AND used_at IS NULL", now).
		Delete(&model.Invitation{})
	return result.RowsAffected, result.Error
}

// AcceptInvitation 同一事务内标记邀请已使用并创建用户，邀请只能被消费一次
func (s *invitationRepoImpl) AcceptInvitation(ctx context.Context, invitationID uuid.UUID, user *model.User, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Invitation{}).
			Where("id = ? AND used_at IS NULL AND expires_at > ?", invitationID, now).
			Update("used_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvitationConsumed
		}

		return translateDuplicate(tx.Create(user).Error)
	})
}
