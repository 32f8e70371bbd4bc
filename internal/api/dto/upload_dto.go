package dto

import "time"

// PresignUploadDTO 申请直传链接
type PresignUploadDTO struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required,max=100"`
	FileSize    int64  `json:"file_size" validate:"required,gt=0"`
}

type PresignResultDTO struct {
	UploadURL string    `json:"upload_url"`
	Method    string    `json:"method"`
	Pathname  string    `json:"pathname"`
	BlobURL   string    `json:"blob_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UploadResultDTO struct {
	BlobURL      string  `json:"blob_url"`
	Pathname     string  `json:"pathname"`
	MimeType     string  `json:"mime_type"`
	FileSize     int64   `json:"file_size"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// PendingUploadMetadata 已上传但尚未登记的对象，存于 redis 哈希
type PendingUploadMetadata struct {
	OwnerID      string `json:"owner_id"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
	ThumbnailKey string `json:"thumbnail_key,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}
