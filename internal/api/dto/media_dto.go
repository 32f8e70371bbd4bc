package dto

import "time"

// CreateMediaDTO 上传完成后登记媒体记录
type CreateMediaDTO struct {
	BlobURL    string   `json:"blob_url" validate:"required,url"`
	Caption    *string  `json:"caption" validate:"omitempty,max=500"`
	ClientName *string  `json:"client_name" validate:"omitempty,max=100"`
	MimeType   string   `json:"mime_type" validate:"required,max=100"`
	FileSize   int64    `json:"file_size" validate:"required,gt=0"`
	Tags       []string `json:"tags" validate:"max=50,dive,max=100"`
	FolderID   *string  `json:"folder_id" validate:"omitempty,uuid"`
}

// UpdateMediaDTO 编辑说明/客户/标签，Tags 非 nil 时整体替换
type UpdateMediaDTO struct {
	Caption    *string   `json:"caption" validate:"omitempty,max=500"`
	ClientName *string   `json:"client_name" validate:"omitempty,max=100"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=50,dive,max=100"`
}

// MediaQueryDTO 列表筛选参数
type MediaQueryDTO struct {
	Scope       string `form:"scope" validate:"omitempty,oneof=mine all"`
	ClientName  string `form:"client_name" validate:"max=100"`
	Search      string `form:"search" validate:"max=200"`
	Tag         string `form:"tag" validate:"max=100"`
	From        string `form:"from"`
	To          string `form:"to"`
	FolderID    string `form:"folder_id"`
	StarredOnly bool   `form:"starred_only"`
	SortBy      string `form:"sort_by" validate:"omitempty,oneof=created_at file_size client_name"`
	SortOrder   string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
	Limit       int    `form:"limit" validate:"min=0"`
	Offset      int    `form:"offset" validate:"min=0"`
}

type MediaDTO struct {
	ID           string    `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	OwnerName    string    `json:"owner_name,omitempty"`
	OwnerEmail   string    `json:"owner_email,omitempty"`
	BlobURL      string    `json:"blob_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Caption      *string   `json:"caption"`
	ClientName   *string   `json:"client_name"`
	MimeType     string    `json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	FolderID     *string   `json:"folder_id"`
	IsStarred    bool      `json:"is_starred"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MediaListDTO struct {
	Items  []*MediaDTO `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// MoveMediaDTO folder_id 为 null 时移出文件夹
type MoveMediaDTO struct {
	FolderID *string `json:"folder_id" validate:"omitempty,uuid"`
}

type StarMediaDTO struct {
	IsStarred *bool `json:"is_starred"`
}

type BulkMoveDTO struct {
	IDs      []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	FolderID *string  `json:"folder_id" validate:"omitempty,uuid"`
}

type BulkStarDTO struct {
	IDs       []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	IsStarred *bool    `json:"is_starred"`
}

type BulkDeleteDTO struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
}

type BulkResultDTO struct {
	Affected int64 `json:"affected"`
}

// StorageStatsDTO 管理后台存储统计
type StorageStatsDTO struct {
	TotalFiles           int64    `json:"total_files"`
	TotalSize            int64    `json:"total_size"`
	AverageSize          int64    `json:"average_size"`
	ImageFiles           int64    `json:"image_files"`
	VideoFiles           int64    `json:"video_files"`
	OtherFiles           int64    `json:"other_files"`
	EstimatedMonthlyCost float64  `json:"estimated_monthly_cost"`
	Warnings             []string `json:"warnings"`
}
