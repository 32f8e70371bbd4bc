package api

import (
	"TaylorDAM/internal/api/handler"
	"TaylorDAM/internal/api/middleware"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	InvitationHandler *handler.InvitationHandler
	UploadHandler     *handler.UploadHandler
	MediaHandler      *handler.MediaHandler
	FolderHandler     *handler.FolderHandler
	TagHandler        *handler.TagHandler
	TokenBlacklist    middleware.TokenBlacklist
	AllowedOrigins    []string
}
