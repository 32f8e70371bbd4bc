package handler

import (
	"TaylorDAM/internal/pkg/response"
	"TaylorDAM/internal/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagSvc service.TagService
}

func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{tagSvc: tagSvc}
}

// GetTags 标签筛选项，按使用次数排序
func (s *TagHandler) GetTags(c *gin.Context) {
	tags, err := s.tagSvc.GetTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}
