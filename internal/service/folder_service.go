package service

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/model"
	"TaylorDAM/internal/pkg/consts"
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const folderListTTL = 5 * time.Minute

type FolderService interface {
	GetFolders(ctx context.Context) ([]*dto.FolderDTO, error)
	GetFolder(ctx context.Context, id string) (*dto.FolderDTO, error)
	CreateFolder(ctx context.Context, actor Actor, dto *dto.CreateFolderDTO) (*dto.FolderDTO, error)
	UpdateFolder(ctx context.Context, id string, dto *dto.UpdateFolderDTO) (*dto.FolderDTO, error)
	DeleteFolder(ctx context.Context, id string) error
	ToggleStar(ctx context.Context, id string) (*dto.FolderDTO, error)
}

type FolderServiceImpl struct {
	folderRepo repository.FolderRepo
	kv         KVStore
}

func NewFolderService(folderRepo repository.FolderRepo, kv KVStore) FolderService {
	return &FolderServiceImpl{
		folderRepo: folderRepo,
		kv:         kv,
	}
}

// GetFolders 优先读缓存，缓存异常时回源数据库
func (s *FolderServiceImpl) GetFolders(ctx context.Context) ([]*dto.FolderDTO, error) {
	if cached, err := s.kv.Get(ctx, consts.FolderListKey); err == nil && cached != "" {
		var folders []*dto.FolderDTO
		if err = json.Unmarshal([]byte(cached), &folders); err == nil {
			return folders, nil
		}
		log.WarnContext(ctx, "invalid folder cache", "err", err)
	}

	rows, err := s.folderRepo.GetFolders(ctx)
	if err != nil {
		return nil, err
	}
	folders := make([]*dto.FolderDTO, 0, len(rows))
	for _, row := range rows {
		folder, err := toFolderDTO(row)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	if payload, err := json.Marshal(folders); err == nil {
		if err = s.kv.SetEX(ctx, consts.FolderListKey, string(payload), folderListTTL); err != nil {
			log.WarnContext(ctx, "failed to cache folder list", "err", err)
		}
	}
	return folders, nil
}

func (s *FolderServiceImpl) GetFolder(ctx context.Context, id string) (*dto.FolderDTO, error) {
	folderID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrFolderNotFound
	}
	return s.folderDetail(ctx, folderID)
}

func (s *FolderServiceImpl) folderDetail(ctx context.Context, id uuid.UUID) (*dto.FolderDTO, error) {
	row, err := s.folderRepo.GetFolderWithCount(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrFolderNotFound
	}
	return toFolderDTO(row)
}

func (s *FolderServiceImpl) CreateFolder(ctx context.Context, actor Actor, createDTO *dto.CreateFolderDTO) (*dto.FolderDTO, error) {
	creatorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	name := strings.TrimSpace(createDTO.Name)
	if name == "" {
		return nil, ErrParamInvalid
	}

	folder := &model.Folder{
		Name:        name,
		Description: util.TrimPtr(createDTO.Description),
		CreatedBy:   creatorID,
	}
	if err = s.folderRepo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.folderDetail(ctx, folder.ID)
}

// UpdateFolder 只更新传入的字段
func (s *FolderServiceImpl) UpdateFolder(ctx context.Context, id string, updateDTO *dto.UpdateFolderDTO) (*dto.FolderDTO, error) {
	folderID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrFolderNotFound
	}

	updates := map[string]any{}
	if updateDTO.Name != nil {
		name := strings.TrimSpace(*updateDTO.Name)
		if name == "" {
			return nil, ErrParamInvalid
		}
		updates["name"] = name
	}
	if updateDTO.Description != nil {
		updates["description"] = util.TrimPtr(updateDTO.Description)
	}

	folder, err := s.folderRepo.UpdateFolder(ctx, folderID, updates)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}
	s.invalidate(ctx)
	return s.folderDetail(ctx, folderID)
}

// DeleteFolder 文件夹内的媒体保留，移出到未归档
func (s *FolderServiceImpl) DeleteFolder(ctx context.Context, id string) error {
	folderID, err := uuid.Parse(id)
	if err != nil {
		return ErrFolderNotFound
	}
	affected, err := s.folderRepo.DeleteFolder(ctx, folderID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFolderNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *FolderServiceImpl) ToggleStar(ctx context.Context, id string) (*dto.FolderDTO, error) {
	folderID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrFolderNotFound
	}
	folder, err := s.folderRepo.ToggleStar(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}
	s.invalidate(ctx)
	return s.folderDetail(ctx, folderID)
}

func (s *FolderServiceImpl) invalidate(ctx context.Context) {
	if err := s.kv.Del(ctx, consts.FolderListKey); err != nil {
		log.WarnContext(ctx, "failed to invalidate folder cache", "err", err)
	}
}
