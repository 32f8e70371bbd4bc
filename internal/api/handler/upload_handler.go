package handler

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/pkg/response"
	"TaylorDAM/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead 为 multipart 边界与表单字段预留的额度
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadSvc service.UploadService
	maxSize   int64
}

func NewUploadHandler(uploadSvc service.UploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, maxSize: maxSize}
}

// Presign 浏览器直传第一步
func (s *UploadHandler) Presign(c *gin.Context) {
	var presignDTO dto.PresignUploadDTO
	if !bindJSON(c, &presignDTO) {
		return
	}
	result, err := s.uploadSvc.PresignUpload(c.Request.Context(), actorFrom(c), &presignDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Upload 经服务端中转上传
func (s *UploadHandler) Upload(c *gin.Context) {
	if s.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxSize+multipartOverhead)
	}

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, service.ErrFileTooLarge)
			return
		}
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	result, err := s.uploadSvc.UploadFile(c.Request.Context(), actorFrom(c), file.Filename, reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	log.InfoContext(c.Request.Context(), "media upload success", "key", result.Pathname, "type", result.MimeType)
	response.Success(c, result)
}
