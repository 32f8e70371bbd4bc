package service

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/repository"
	"context"
)

type TagService interface {
	GetTags(ctx context.Context) ([]*dto.TagDTO, error)
}

type TagServiceImpl struct {
	tagRepo repository.TagRepo
}

func NewTagService(tagRepo repository.TagRepo) TagService {
	return &TagServiceImpl{tagRepo: tagRepo}
}

// GetTags 按使用次数倒序
func (s *TagServiceImpl) GetTags(ctx context.Context) ([]*dto.TagDTO, error) {
	rows, err := s.tagRepo.GetTagsWithCount(ctx)
	if err != nil {
		return nil, err
	}
	tags := make([]*dto.TagDTO, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, &dto.TagDTO{Name: row.Name, Count: row.Count})
	}
	return tags, nil
}
