package repository

import (
	"TaylorDAM/internal/model"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FolderRepo interface {
	GetFolders(ctx context.Context) ([]*model.FolderWithCount, error)
	GetFolderWithCount(ctx context.Context, id uuid.UUID) (*model.FolderWithCount, error)
	GetFolderById(ctx context.Context, id uuid.UUID) (*model.Folder, error)
	CreateFolder(ctx context.Context, folder *model.Folder) error
	UpdateFolder(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Folder, error)
	DeleteFolder(ctx context.Context, id uuid.UUID) (int64, error)
	ToggleStar(ctx context.Context, id uuid.UUID) (*model.Folder, error)
}

type folderRepoImpl struct {
	db *gorm.DB
}

func NewFolderRepo(db *gorm.DB) FolderRepo {
	return &folderRepoImpl{db: db}
}

func (s *folderRepoImpl) withCount(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("folders f").
		Select("f.*, u.name AS creator_name, COUNT(m.id) AS media_count").
		Joins("LEFT JOIN users u ON u.id = f.created_by").
		Joins("LEFT JOIN media_assets m ON m.folder_id = f.id").
		Group("f.id, u.name")
}

// GetFolders 星标文件夹优先，其余按名称排序
func (s *folderRepoImpl) GetFolders(ctx context.Context) ([]*model.FolderWithCount, error) {
	folders := make([]*model.FolderWithCount, 0)
	err := s.withCount(ctx).
		Order("f.is_starred DESC, f.name ASC").
		Scan(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (s *folderRepoImpl) GetFolderWithCount(ctx context.Context, id uuid.UUID) (*model.FolderWithCount, error) {
	folders := make([]*model.FolderWithCount, 0, 1)
	err := s.withCount(ctx).
		Where("f.id = ?", id).
		Scan(&folders).Error
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		return nil, nil
	}
	return folders[0], nil
}

func (s *folderRepoImpl) GetFolderById(ctx context.Context, id uuid.UUID) (*model.Folder, error) {
	var folder model.Folder
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &folder, nil
}

func (s *folderRepoImpl) CreateFolder(ctx context.Context, folder *model.Folder) error {
	return s.db.WithContext(ctx).Create(folder).Error
}

// UpdateFolder 部分更新，记录不存在时返回 nil
func (s *folderRepoImpl) UpdateFolder(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Folder, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["updated_at"] = time.Now()

	var folders []*model.Folder
	result := s.db.WithContext(ctx).
		Model(&folders).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(folders) == 0 {
		return nil, nil
	}
	return folders[0], nil
}

// DeleteFolder 媒体的 folder_id 由外键 ON DELETE SET NULL 置空
func (s *folderRepoImpl) DeleteFolder(ctx context.Context, id uuid.UUID) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Folder{})
	return result.RowsAffected, result.Error
}

func (s *folderRepoImpl) ToggleStar(ctx context.Context, id uuid.UUID) (*model.Folder, error) {
	var folders []*model.Folder
	result := s.db.WithContext(ctx).
		Model(&folders).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_starred": gorm.Expr("NOT is_starred"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if len(folders) == 0 {
		return nil, nil
	}
	return folders[0], nil
}
