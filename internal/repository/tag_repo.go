package repository

import (
	"TaylorDAM/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error)
	GetTagsWithCount(ctx context.Context) ([]*model.TagCount, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

func (s *tagRepoImpl) GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error) {
	return getOrCreateTags(s.db.WithContext(ctx), tagNames)
}

func (s *tagRepoImpl) GetTagsWithCount(ctx context.Context) ([]*model.TagCount, error) {
	rows := make([]*model.TagCount, 0)
	err := s.db.WithContext(ctx).
		Table("tags t").
		Select("t.name, COUNT(mt.media_id) AS count").
		Joins("LEFT JOIN media_tags mt ON mt.tag_id = t.id").
		Group("t.id, t.name").
		Order("count DESC, t.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// getOrCreateTags 标签名已规范化，已存在的标签不重复创建
func getOrCreateTags(tx *gorm.DB, tagNames []string) ([]*model.Tag, error) {
	if len(tagNames) == 0 {
		return []*model.Tag{}, nil
	}

	newTags := make([]model.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		newTags = append(newTags, model.Tag{Name: name})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&newTags).Error; err != nil {
		return nil, err
	}

	var tags []*model.Tag
	if err := tx.Where("name IN ?", tagNames).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// linkTags 关联媒体与标签，重复关联忽略
func linkTags(tx *gorm.DB, mediaID uuid.UUID, tagNames []string) error {
	tags, err := getOrCreateTags(tx, tagNames)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	links := make([]model.MediaTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, model.MediaTag{MediaID: mediaID, TagID: tag.ID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
