package handler

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/pkg/response"
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// CreateMedia 上传第二步，登记媒体记录
func (s *MediaHandler) CreateMedia(c *gin.Context) {
	var createDTO dto.CreateMediaDTO
	if !bindJSON(c, &createDTO) {
		return
	}
	media, err := s.mediaSvc.CreateMedia(c.Request.Context(), actorFrom(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, media)
}

func (s *MediaHandler) GetMediaList(c *gin.Context) {
	var query dto.MediaQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}
	list, err := s.mediaSvc.GetMediaList(c.Request.Context(), actorFrom(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *MediaHandler) GetMedia(c *gin.Context) {
	media, err := s.mediaSvc.GetMedia(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) UpdateMedia(c *gin.Context) {
	var updateDTO dto.UpdateMediaDTO
	if !bindJSON(c, &updateDTO) {
		return
	}
	media, err := s.mediaSvc.UpdateMedia(c.Request.Context(), actorFrom(c), c.Param("id"), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) DeleteMedia(c *gin.Context) {
	if err := s.mediaSvc.DeleteMedia(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MediaHandler) MoveMedia(c *gin.Context) {
	var moveDTO dto.MoveMediaDTO
	if !bindJSON(c, &moveDTO) {
		return
	}
	media, err := s.mediaSvc.MoveMedia(c.Request.Context(), actorFrom(c), c.Param("id"), &moveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) StarMedia(c *gin.Context) {
	var starDTO dto.StarMediaDTO
	if !bindJSON(c, &starDTO) {
		return
	}
	media, err := s.mediaSvc.StarMedia(c.Request.Context(), c.Param("id"), &starDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) BulkMove(c *gin.Context) {
	var moveDTO dto.BulkMoveDTO
	if !bindJSON(c, &moveDTO) {
		return
	}
	result, err := s.mediaSvc.BulkMove(c.Request.Context(), &moveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MediaHandler) BulkStar(c *gin.Context) {
	var starDTO dto.BulkStarDTO
	if !bindJSON(c, &starDTO) {
		return
	}
	result, err := s.mediaSvc.BulkStar(c.Request.Context(), &starDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MediaHandler) BulkDelete(c *gin.Context) {
	var deleteDTO dto.BulkDeleteDTO
	if !bindJSON(c, &deleteDTO) {
		return
	}
	result, err := s.mediaSvc.BulkDelete(c.Request.Context(), &deleteDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetStorageStats 管理后台存储概览
func (s *MediaHandler) GetStorageStats(c *gin.Context) {
	stats, err := s.mediaSvc.GetStorageStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
