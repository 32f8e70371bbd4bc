package model

import "github.com/google/uuid"

type MediaTag struct {
	MediaID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID   uint64    `gorm:"primaryKey;index:idx_media_tags_tag"`
}

func (MediaTag) TableName() string {
	return "media_tags"
}
