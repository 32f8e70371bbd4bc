package api

import (
	"TaylorDAM/internal/api/middleware"
	"TaylorDAM/internal/model"
	"TaylorDAM/internal/pkg/logger"
	"TaylorDAM/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(group.AllowedOrigins))
	r.Use(middleware.CommonMiddleware())
	logger.SetupGin(r)

	auth := middleware.AuthMiddleware(group.TokenBlacklist)
	adminOnly := middleware.CheckRoles(model.RoleAdmin)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.Success(c, "pong")
		})

		authGroup := apiGroup.Group("/auth")
		{
			// 无需登录即可访问的接口
			authGroup.POST("/login", group.UserHandler.Login)
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.GET("/invitations/:token", group.UserHandler.PreviewInvitation)

			loggedIn := authGroup.Group("")
			loggedIn.Use(auth)
			{
				loggedIn.POST("/logout", group.UserHandler.Logout)
				loggedIn.GET("/me", group.UserHandler.Me)
				loggedIn.POST("/change-password", group.UserHandler.ChangePassword)
			}
		}

		invitationGroup := apiGroup.Group("/invitations")
		invitationGroup.Use(auth, adminOnly)
		{
			invitationGroup.POST("", group.InvitationHandler.CreateInvitation)
			invitationGroup.GET("", group.InvitationHandler.GetInvitations)
			invitationGroup.DELETE("/:id", group.InvitationHandler.RevokeInvitation)
		}

		uploadGroup := apiGroup.Group("/upload")
		uploadGroup.Use(auth)
		{
			uploadGroup.POST("", group.UploadHandler.Upload)
			uploadGroup.POST("/presign", group.UploadHandler.Presign)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(auth)
		{
			mediaGroup.POST("", group.MediaHandler.CreateMedia)
			mediaGroup.GET("", group.MediaHandler.GetMediaList)
			mediaGroup.GET("/:id", group.MediaHandler.GetMedia)
			mediaGroup.PATCH("/:id", group.MediaHandler.UpdateMedia)
			mediaGroup.DELETE("/:id", group.MediaHandler.DeleteMedia)
			mediaGroup.PATCH("/:id/move", group.MediaHandler.MoveMedia)

			// 需要 admin 角色
			adminGroup := mediaGroup.Group("")
			adminGroup.Use(adminOnly)
			{
				adminGroup.PATCH("/:id/star", group.MediaHandler.StarMedia)
				adminGroup.POST("/bulk/move", group.MediaHandler.BulkMove)
				adminGroup.POST("/bulk/star", group.MediaHandler.BulkStar)
				adminGroup.POST("/bulk/delete", group.MediaHandler.BulkDelete)
			}
		}

		folderGroup := apiGroup.Group("/folders")
		folderGroup.Use(auth)
		{
			folderGroup.GET("", group.FolderHandler.GetFolders)
			folderGroup.GET("/:id", group.FolderHandler.GetFolder)

			adminGroup := folderGroup.Group("")
			adminGroup.Use(adminOnly)
			{
				adminGroup.POST("", group.FolderHandler.CreateFolder)
				adminGroup.PATCH("/:id", group.FolderHandler.UpdateFolder)
				adminGroup.DELETE("/:id", group.FolderHandler.DeleteFolder)
				adminGroup.PATCH("/:id/star", group.FolderHandler.ToggleStar)
			}
		}

		apiGroup.GET("/tags", auth, group.TagHandler.GetTags)

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, adminOnly)
		{
			adminGroup.GET("/stats", group.MediaHandler.GetStorageStats)
		}
	}

	return r
}
