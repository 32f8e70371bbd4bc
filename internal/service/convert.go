package service

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/model"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// uuid 字段在 DTO 中统一以字符串输出
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
		{
			SrcType: &uuid.UUID{},
			DstType: (*string)(nil),
			Fn: func(src interface{}) (interface{}, error) {
				id, _ := src.(*uuid.UUID)
				if id == nil {
					return (*string)(nil), nil
				}
				s := id.String()
				return &s, nil
			},
		},
	},
}

func copyDTO(to, from interface{}) error {
	return copier.CopyWithOption(to, from, copyOption)
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	out := &dto.UserDTO{}
	if err := copyDTO(out, user); err != nil {
		return nil, err
	}
	return out, nil
}

func toMediaDTO(row *model.MediaAssetRow) (*dto.MediaDTO, error) {
	out := &dto.MediaDTO{}
	if err := copyDTO(out, row); err != nil {
		return nil, err
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out, nil
}

func toFolderDTO(folder *model.FolderWithCount) (*dto.FolderDTO, error) {
	out := &dto.FolderDTO{}
	if err := copyDTO(out, folder); err != nil {
		return nil, err
	}
	return out, nil
}

func toInvitationDTO(inv *model.InvitationWithInviter) (*dto.InvitationDTO, error) {
	out := &dto.InvitationDTO{}
	if err := copyDTO(out, inv); err != nil {
		return nil, err
	}
	return out, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, ErrParamInvalid
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, ErrParamInvalid
	}
	return &id, nil
}
