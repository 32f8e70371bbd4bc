package model

import (
	"time"

	"github.com/google/uuid"
)

type MediaAsset struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerUserID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_media_owner"`
	BlobURL      string     `gorm:"type:text;not null"`
	ThumbnailURL *string    `gorm:"type:text"`
	Caption      *string    `gorm:"type:text"`
	ClientName   *string    `gorm:"type:varchar(255);index:idx_media_client"`
	MimeType     string     `gorm:"type:varchar(100);not null"`
	FileSize     int64      `gorm:"not null"`
	FolderID     *uuid.UUID `gorm:"type:uuid;index:idx_media_folder"`
	IsStarred    bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (MediaAsset) TableName() string {
	return "media_assets"
}

// MediaAssetRow 列表查询结果，附带上传者信息与聚合标签
type MediaAssetRow struct {
	MediaAsset
	OwnerName  string
	OwnerEmail string
	Tags       []string `gorm:"-"`
	// TagList 由 json_agg 聚合得到的 JSON 数组
	TagList string
}

// MediaStats 存储用量统计
type MediaStats struct {
	TotalFiles int64
	TotalSize  int64
	ImageFiles int64
	VideoFiles int64
}
