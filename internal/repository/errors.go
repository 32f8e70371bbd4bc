package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate 唯一约束冲突
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvitationConsumed 邀请已被并发请求使用
	ErrInvitationConsumed = errors.New("invitation already consumed")
)

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
