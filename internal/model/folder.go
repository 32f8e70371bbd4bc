package model

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null;index:idx_folders_name"`
	Description *string   `gorm:"type:text"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index:idx_folders_created_by"`
	IsStarred   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Folder) TableName() string {
	return "folders"
}

// FolderWithCount 文件夹列表项，带创建者与媒体数量
type FolderWithCount struct {
	Folder
	CreatorName string
	MediaCount  int64
}
