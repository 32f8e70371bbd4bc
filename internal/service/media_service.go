package service

import (
	"TaylorDAM/internal/api/config"
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/model"
	"TaylorDAM/internal/pkg/consts"
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type MediaService interface {
	CreateMedia(ctx context.Context, actor Actor, dto *dto.CreateMediaDTO) (*dto.MediaDTO, error)
	GetMediaList(ctx context.Context, actor Actor, query *dto.MediaQueryDTO) (*dto.MediaListDTO, error)
	GetMedia(ctx context.Context, actor Actor, id string) (*dto.MediaDTO, error)
	UpdateMedia(ctx context.Context, actor Actor, id string, dto *dto.UpdateMediaDTO) (*dto.MediaDTO, error)
	DeleteMedia(ctx context.Context, actor Actor, id string) error
	MoveMedia(ctx context.Context, actor Actor, id string, dto *dto.MoveMediaDTO) (*dto.MediaDTO, error)
	StarMedia(ctx context.Context, id string, dto *dto.StarMediaDTO) (*dto.MediaDTO, error)
	BulkMove(ctx context.Context, dto *dto.BulkMoveDTO) (*dto.BulkResultDTO, error)
	BulkStar(ctx context.Context, dto *dto.BulkStarDTO) (*dto.BulkResultDTO, error)
	BulkDelete(ctx context.Context, dto *dto.BulkDeleteDTO) (*dto.BulkResultDTO, error)
	GetStorageStats(ctx context.Context) (*dto.StorageStatsDTO, error)
}

type MediaServiceImpl struct {
	mediaRepo  repository.MediaRepo
	folderRepo repository.FolderRepo
	storage    BlobStorage
	kv         KVStore
	maxSize    int64
	storageCfg config.StorageConfig
}

func NewMediaService(
	mediaRepo repository.MediaRepo,
	folderRepo repository.FolderRepo,
	storage BlobStorage,
	kv KVStore,
	maxSize int64,
	storageCfg config.StorageConfig,
) MediaService {
	return &MediaServiceImpl{
		mediaRepo:  mediaRepo,
		folderRepo: folderRepo,
		storage:    storage,
		kv:         kv,
		maxSize:    maxSize,
		storageCfg: storageCfg,
	}
}

// CreateMedia 登记已上传的对象，对象必须属于当前用户且真实存在
func (s *MediaServiceImpl) CreateMedia(ctx context.Context, actor Actor, createDTO *dto.CreateMediaDTO) (*dto.MediaDTO, error) {
	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	key, ok := s.storage.KeyFromURL(createDTO.BlobURL)
	if !ok || !strings.HasPrefix(key, consts.MediaObjectPrefix) {
		return nil, ErrBlobInvalid
	}
	if !util.IsMediaContentType(strings.ToLower(createDTO.MimeType)) {
		return nil, ErrFileNotSupported
	}
	if s.maxSize > 0 && createDTO.FileSize > s.maxSize {
		return nil, ErrFileTooLarge
	}

	meta, err := s.pendingUpload(ctx, key)
	if err != nil {
		return nil, err
	}
	// 普通用户只能登记自己上传且尚未登记的对象，admin 可补登无 pending 记录的对象
	if meta == nil && !actor.IsAdmin() {
		return nil, ErrBlobNotOwned
	}
	if meta != nil && meta.OwnerID != actor.ID {
		return nil, ErrBlobNotOwned
	}

	blobURL := s.storage.PublicURL(key)
	registered, err := s.mediaRepo.GetMediaByBlobURL(ctx, blobURL)
	if err != nil {
		return nil, err
	}
	if registered != nil {
		return nil, ErrMediaExist
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBlobMissing
	}

	folderID, err := s.checkFolder(ctx, createDTO.FolderID)
	if err != nil {
		return nil, err
	}

	media := &model.MediaAsset{
		OwnerUserID: ownerID,
		BlobURL:     blobURL,
		Caption:     util.TrimPtr(createDTO.Caption),
		ClientName:  util.TrimPtr(createDTO.ClientName),
		MimeType:    strings.ToLower(createDTO.MimeType),
		FileSize:    createDTO.FileSize,
		FolderID:    folderID,
	}
	if meta != nil && meta.ThumbnailKey != "" {
		media.ThumbnailURL = util.Ptr(s.storage.PublicURL(meta.ThumbnailKey))
	}

	if err = s.mediaRepo.CreateMedia(ctx, media, util.NormalizeTags(createDTO.Tags)); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrMediaExist
		}
		return nil, err
	}
	if meta != nil {
		if err = s.kv.HDel(ctx, consts.MediaPendingKey, key); err != nil {
			log.WarnContext(ctx, "failed to clear pending upload", "key", key, "err", err)
		}
	}
	if folderID != nil {
		s.invalidateFolders(ctx)
	}
	return s.detail(ctx, media.ID)
}

func (s *MediaServiceImpl) pendingUpload(ctx context.Context, key string) (*dto.PendingUploadMetadata, error) {
	val, err := s.kv.HGet(ctx, consts.MediaPendingKey, key)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}
	var meta dto.PendingUploadMetadata
	if err = json.Unmarshal([]byte(val), &meta); err != nil {
		return nil, fmt.Errorf("decode pending upload %s: %w", key, err)
	}
	return &meta, nil
}

// GetMediaList scope=all 仅管理员可用，不会降级为 mine
func (s *MediaServiceImpl) GetMediaList(ctx context.Context, actor Actor, query *dto.MediaQueryDTO) (*dto.MediaListDTO, error) {
	filter, err := s.buildFilter(actor, query)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.mediaRepo.QueryMedia(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.MediaDTO, 0, len(rows))
	for _, row := range rows {
		item, err := toMediaDTO(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &dto.MediaListDTO{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *MediaServiceImpl) buildFilter(actor Actor, query *dto.MediaQueryDTO) (repository.MediaFilter, error) {
	filter := repository.MediaFilter{
		ClientName:  strings.TrimSpace(query.ClientName),
		Search:      strings.TrimSpace(query.Search),
		Tag:         strings.TrimSpace(query.Tag),
		StarredOnly: query.StarredOnly,
		SortBy:      query.SortBy,
		SortOrder:   query.SortOrder,
		Limit:       query.Limit,
		Offset:      query.Offset,
	}

	switch query.Scope {
	case "", "mine":
		ownerID, err := uuid.Parse(actor.ID)
		if err != nil {
			return filter, ErrUnauthorized
		}
		filter.OwnerUserID = &ownerID
	case "all":
		if !actor.IsAdmin() {
			return filter, ErrScopeForbidden
		}
	default:
		return filter, ErrParamInvalid
	}

	from, err := util.ParseDateParam(query.From, false)
	if err != nil {
		return filter, ErrParamInvalid
	}
	to, err := util.ParseDateParam(query.To, true)
	if err != nil {
		return filter, ErrParamInvalid
	}
	filter.From, filter.To = from, to

	switch folder := strings.TrimSpace(query.FolderID); folder {
	case "":
	case "none":
		filter.Unfiled = true
	default:
		folderID, err := uuid.Parse(folder)
		if err != nil {
			return filter, ErrParamInvalid
		}
		filter.FolderID = &folderID
	}

	if filter.Limit <= 0 {
		filter.Limit = consts.DefaultMediaLimit
	}
	if filter.Limit > consts.MaxMediaLimit {
		filter.Limit = consts.MaxMediaLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}

func (s *MediaServiceImpl) GetMedia(ctx context.Context, actor Actor, id string) (*dto.MediaDTO, error) {
	media, err := s.accessibleMedia(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, media.ID)
}

// accessibleMedia 上传者本人或管理员可操作
func (s *MediaServiceImpl) accessibleMedia(ctx context.Context, actor Actor, id string) (*model.MediaAsset, error) {
	mediaID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrMediaNotFound
	}
	media, err := s.mediaRepo.GetMediaById(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, ErrMediaNotFound
	}
	if media.OwnerUserID.String() != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return media, nil
}

func (s *MediaServiceImpl) detail(ctx context.Context, id uuid.UUID) (*dto.MediaDTO, error) {
	row, err := s.mediaRepo.GetMediaDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrMediaNotFound
	}
	return toMediaDTO(row)
}

func (s *MediaServiceImpl) UpdateMedia(ctx context.Context, actor Actor, id string, updateDTO *dto.UpdateMediaDTO) (*dto.MediaDTO, error) {
	media, err := s.accessibleMedia(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if updateDTO.Caption != nil {
		updates["caption"] = util.TrimPtr(updateDTO.Caption)
	}
	if updateDTO.ClientName != nil {
		updates["client_name"] = util.TrimPtr(updateDTO.ClientName)
	}
	var tags *[]string
	if updateDTO.Tags != nil {
		tags = util.Ptr(util.NormalizeTags(*updateDTO.Tags))
	}

	if err = s.mediaRepo.UpdateMedia(ctx, media.ID, updates, tags); err != nil {
		return nil, err
	}
	return s.detail(ctx, media.ID)
}

// DeleteMedia 先删记录再删对象，对象删除失败只记录日志
func (s *MediaServiceImpl) DeleteMedia(ctx context.Context, actor Actor, id string) error {
	media, err := s.accessibleMedia(ctx, actor, id)
	if err != nil {
		return err
	}
	deleted, err := s.mediaRepo.DeleteMedia(ctx, []uuid.UUID{media.ID})
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return ErrMediaNotFound
	}
	for _, m := range deleted {
		s.removeBlobs(ctx, m)
	}
	if media.FolderID != nil {
		s.invalidateFolders(ctx)
	}
	return nil
}

func (s *MediaServiceImpl) MoveMedia(ctx context.Context, actor Actor, id string, moveDTO *dto.MoveMediaDTO) (*dto.MediaDTO, error) {
	media, err := s.accessibleMedia(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	folderID, err := s.checkFolder(ctx, moveDTO.FolderID)
	if err != nil {
		return nil, err
	}
	if _, err = s.mediaRepo.MoveMedia(ctx, []uuid.UUID{media.ID}, folderID); err != nil {
		return nil, err
	}
	s.invalidateFolders(ctx)
	return s.detail(ctx, media.ID)
}

func (s *MediaServiceImpl) StarMedia(ctx context.Context, id string, starDTO *dto.StarMediaDTO) (*dto.MediaDTO, error) {
	if starDTO.IsStarred == nil {
		return nil, ErrStarValueInvalid
	}
	mediaID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrMediaNotFound
	}
	affected, err := s.mediaRepo.StarMedia(ctx, []uuid.UUID{mediaID}, *starDTO.IsStarred)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrMediaNotFound
	}
	return s.detail(ctx, mediaID)
}

func (s *MediaServiceImpl) BulkMove(ctx context.Context, moveDTO *dto.BulkMoveDTO) (*dto.BulkResultDTO, error) {
	ids, err := parseIDs(moveDTO.IDs)
	if err != nil {
		return nil, err
	}
	folderID, err := s.checkFolder(ctx, moveDTO.FolderID)
	if err != nil {
		return nil, err
	}
	affected, err := s.mediaRepo.MoveMedia(ctx, ids, folderID)
	if err != nil {
		return nil, err
	}
	s.invalidateFolders(ctx)
	return &dto.BulkResultDTO{Affected: affected}, nil
}

func (s *MediaServiceImpl) BulkStar(ctx context.Context, starDTO *dto.BulkStarDTO) (*dto.BulkResultDTO, error) {
	if starDTO.IsStarred == nil {
		return nil, ErrStarValueInvalid
	}
	ids, err := parseIDs(starDTO.IDs)
	if err != nil {
		return nil, err
	}
	affected, err := s.mediaRepo.StarMedia(ctx, ids, *starDTO.IsStarred)
	if err != nil {
		return nil, err
	}
	return &dto.BulkResultDTO{Affected: affected}, nil
}

// BulkDelete 记录在一个语句内删除，对象并发删除且限制并发数
func (s *MediaServiceImpl) BulkDelete(ctx context.Context, deleteDTO *dto.BulkDeleteDTO) (*dto.BulkResultDTO, error) {
	ids, err := parseIDs(deleteDTO.IDs)
	if err != nil {
		return nil, err
	}
	deleted, err := s.mediaRepo.DeleteMedia(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 记录已删除，对象清理不随请求取消
	bgCtx := context.WithoutCancel(ctx)
	sem := semaphore.NewWeighted(consts.BulkDeleteWorkers)
	g, gCtx := errgroup.WithContext(bgCtx)
	for _, media := range deleted {
		if err = sem.Acquire(gCtx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			s.removeBlobs(gCtx, media)
			return nil
		})
	}
	_ = g.Wait()

	s.invalidateFolders(ctx)
	return &dto.BulkResultDTO{Affected: int64(len(deleted))}, nil
}

func (s *MediaServiceImpl) removeBlobs(ctx context.Context, media *model.MediaAsset) {
	if key, ok := s.storage.KeyFromURL(media.BlobURL); ok {
		if err := s.storage.Remove(ctx, key); err != nil {
			log.WarnContext(ctx, "failed to delete media object", "media_id", media.ID.String(), "key", key, "err", err)
		}
	}
	if media.ThumbnailURL == nil {
		return
	}
	if key, ok := s.storage.KeyFromURL(*media.ThumbnailURL); ok {
		if err := s.storage.Remove(ctx, key); err != nil {
			log.WarnContext(ctx, "failed to delete thumbnail object", "media_id", media.ID.String(), "key", key, "err", err)
		}
	}
}

// checkFolder 目标文件夹必须存在，nil 表示移出文件夹
func (s *MediaServiceImpl) checkFolder(ctx context.Context, raw *string) (*uuid.UUID, error) {
	folderID, err := parseOptionalID(raw)
	if err != nil || folderID == nil {
		return nil, err
	}
	folder, err := s.folderRepo.GetFolderById(ctx, *folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}
	return folderID, nil
}

func (s *MediaServiceImpl) invalidateFolders(ctx context.Context) {
	if err := s.kv.Del(ctx, consts.FolderListKey); err != nil {
		log.WarnContext(ctx, "failed to invalidate folder cache", "err", err)
	}
}

const (
	bytesPerGB = 1024 * 1024 * 1024
	bytesPerMB = 1024 * 1024
)

func (s *MediaServiceImpl) GetStorageStats(ctx context.Context) (*dto.StorageStatsDTO, error) {
	stats, err := s.mediaRepo.GetMediaStats(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.StorageStatsDTO{
		TotalFiles: stats.TotalFiles,
		TotalSize:  stats.TotalSize,
		ImageFiles: stats.ImageFiles,
		VideoFiles: stats.VideoFiles,
		OtherFiles: stats.TotalFiles - stats.ImageFiles - stats.VideoFiles,
		Warnings:   []string{},
	}
	if stats.TotalFiles > 0 {
		result.AverageSize = stats.TotalSize / stats.TotalFiles
	}

	totalGB := float64(stats.TotalSize) / bytesPerGB
	result.EstimatedMonthlyCost = totalGB * s.storageCfg.CostPerGB

	if s.storageCfg.WarnTotalGB > 0 && totalGB > s.storageCfg.WarnTotalGB {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Total storage %.2f GB exceeds %.0f GB", totalGB, s.storageCfg.WarnTotalGB))
	}
	avgMB := float64(result.AverageSize) / bytesPerMB
	if s.storageCfg.WarnAvgMB > 0 && avgMB > s.storageCfg.WarnAvgMB {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Average file size %.2f MB exceeds %.0f MB", avgMB, s.storageCfg.WarnAvgMB))
	}
	return result, nil
}
