package model

import (
	"time"

	"github.com/google/uuid"
)

type Invitation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string     `gorm:"type:varchar(255);not null;index:idx_invitations_email"`
	Token     string     `gorm:"type:varchar(255);not null;uniqueIndex:invitations_token_key"`
	Role      string     `gorm:"type:varchar(20);not null;default:sales"`
	InvitedBy uuid.UUID  `gorm:"type:uuid;not null"`
	ExpiresAt time.Time  `gorm:"not null;index:idx_invitations_expires_at"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (Invitation) TableName() string {
	return "invitations"
}

// Usable 未使用且未过期
func (i *Invitation) Usable(now time.Time) bool {
	return i.UsedAt == nil && i.ExpiresAt.After(now)
}

// InvitationWithInviter 邀请列表项
type InvitationWithInviter struct {
	Invitation
	InviterName  string
	InviterEmail string
}
