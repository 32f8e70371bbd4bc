package dto

import "time"

// CreateInvitationDTO 管理员发起邀请
type CreateInvitationDTO struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role" validate:"required,oneof=admin sales"`
}

type InvitationDTO struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	InvitedBy    string     `json:"invited_by"`
	InviterName  string     `json:"inviter_name,omitempty"`
	InviterEmail string     `json:"inviter_email,omitempty"`
	ExpiresAt    time.Time  `json:"expires_at"`
	UsedAt       *time.Time `json:"used_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CreateInvitationResultDTO struct {
	Invitation *InvitationDTO `json:"invitation"`
	InviteURL  string         `json:"invite_url"`
	EmailSent  bool           `json:"email_sent"`
}

// InvitationPreviewDTO 注册页展示的邀请信息，不包含 token
type InvitationPreviewDTO struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
