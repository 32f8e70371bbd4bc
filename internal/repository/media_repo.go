package repository

import (
	"TaylorDAM/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MediaRepo interface {
	CreateMedia(ctx context.Context, media *model.MediaAsset, tagNames []string) error
	GetMediaById(ctx context.Context, id uuid.UUID) (*model.MediaAsset, error)
	GetMediaByBlobURL(ctx context.Context, blobURL string) (*model.MediaAsset, error)
	GetMediaDetail(ctx context.Context, id uuid.UUID) (*model.MediaAssetRow, error)
	QueryMedia(ctx context.Context, filter MediaFilter) ([]*model.MediaAssetRow, int64, error)
	UpdateMedia(ctx context.Context, id uuid.UUID, updates map[string]any, tagNames *[]string) error
	DeleteMedia(ctx context.Context, ids []uuid.UUID) ([]*model.MediaAsset, error)
	MoveMedia(ctx context.Context, ids []uuid.UUID, folderID *uuid.UUID) (int64, error)
	StarMedia(ctx context.Context, ids []uuid.UUID, starred bool) (int64, error)
	GetMediaStats(ctx context.Context) (*model.MediaStats, error)
}

type mediaRepoImpl struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) MediaRepo {
	return &mediaRepoImpl{db: db}
}

// CreateMedia 创建媒体记录并关联标签
func (s *mediaRepoImpl) CreateMedia(ctx context.Context, media *model.MediaAsset, tagNames []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(media).Error; err != nil {
			return translateDuplicate(err)
		}
		return linkTags(tx, media.ID, tagNames)
	})
}

func (s *mediaRepoImpl) GetMediaById(ctx context.Context, id uuid.UUID) (*model.MediaAsset, error) {
	var media model.MediaAsset
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &media, nil
}

func (s *mediaRepoImpl) GetMediaByBlobURL(ctx context.Context, blobURL string) (*model.MediaAsset, error) {
	var media model.MediaAsset
	err := s.db.WithContext(ctx).Where("blob_url = ?", blobURL).First(&media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &media, nil
}

func (s *mediaRepoImpl) GetMediaDetail(ctx context.Context, id uuid.UUID) (*model.MediaAssetRow, error) {
	rows, _, err := s.query(ctx, MediaFilter{IDs: []uuid.UUID{id}}, false)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (s *mediaRepoImpl) QueryMedia(ctx context.Context, filter MediaFilter) ([]*model.MediaAssetRow, int64, error) {
	return s.query(ctx, filter, true)
}

func (s *mediaRepoImpl) query(ctx context.Context, filter MediaFilter, withTotal bool) ([]*model.MediaAssetRow, int64, error) {
	db := s.db.WithContext(ctx)

	sql, args := BuildMediaQuery(filter)
	rows := make([]*model.MediaAssetRow, 0)
	if err := db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	for _, row := range rows {
		if err := json.Unmarshal([]byte(row.TagList), &row.Tags); err != nil {
			return nil, 0, fmt.Errorf("decode tags of media %s: %w", row.ID, err)
		}
	}

	var total int64
	if withTotal {
		countSQL, countArgs := BuildMediaCountQuery(filter)
		if err := db.Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
			return nil, 0, err
		}
	}
	return rows, total, nil
}

// UpdateMedia 更新字段，tagNames 非 nil 时整体替换标签
func (s *mediaRepoImpl) UpdateMedia(ctx context.Context, id uuid.UUID, updates map[string]any, tagNames *[]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if updates == nil {
			updates = map[string]any{}
		}
		updates["updated_at"] = time.Now()
		if err := tx.Model(&model.MediaAsset{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if tagNames == nil {
			return nil
		}
		if err := tx.Where("media_id = ?", id).Delete(&model.MediaTag{}).Error; err != nil {
			return err
		}
		return linkTags(tx, id, *tagNames)
	})
}

// DeleteMedia 删除并返回被删除的记录，用于后续清理对象存储
func (s *mediaRepoImpl) DeleteMedia(ctx context.Context, ids []uuid.UUID) ([]*model.MediaAsset, error) {
	deleted := make([]*model.MediaAsset, 0, len(ids))
	err := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id IN ?", ids).
		Delete(&deleted).Error
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *mediaRepoImpl) MoveMedia(ctx context.Context, ids []uuid.UUID, folderID *uuid.UUID) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.MediaAsset{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"folder_id": folderID, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

func (s *mediaRepoImpl) StarMedia(ctx context.Context, ids []uuid.UUID, starred bool) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.MediaAsset{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"is_starred": starred, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

func (s *mediaRepoImpl) GetMediaStats(ctx context.Context) (*model.MediaStats, error) {
	var stats model.MediaStats
	err := s.db.WithContext(ctx).
		Model(&model.MediaAsset{}).
		Select(`COUNT(*) AS total_files,
			COALESCE(SUM(file_size), 0) AS total_size,
			COUNT(*) FILTER (WHERE mime_type LIKE 'image/%') AS image_files,
			COUNT(*) FILTER (WHERE mime_type LIKE 'video/%') AS video_files`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
