package wire

import (
	"TaylorDAM/internal/api"
	"TaylorDAM/internal/api/config"
	"TaylorDAM/internal/api/handler"
	"TaylorDAM/internal/job"
	"TaylorDAM/internal/pkg/cron"
	"TaylorDAM/internal/pkg/mail"
	"TaylorDAM/internal/pkg/minio"
	"TaylorDAM/internal/pkg/redis"
	"TaylorDAM/internal/repository"
	"TaylorDAM/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

// Services 供命令行工具复用的服务集合
type Services struct {
	User       service.UserService
	Invitation service.InvitationService
	Upload     service.UploadService
	Media      service.MediaService
	Folder     service.FolderService
	Tag        service.TagService
	KV         service.KVStore
}

// BuildServices 依赖 redis 与 minio 已完成初始化
func BuildServices(db *gorm.DB, cfg *config.Config) *Services {
	userRepo := repository.NewUserRepo(db)
	invitationRepo := repository.NewInvitationRepo(db)
	mediaRepo := repository.NewMediaRepo(db)
	folderRepo := repository.NewFolderRepo(db)
	tagRepo := repository.NewTagRepository(db)

	kv := redis.NewStore()
	storage := minio.NewStorage()
	mailer := mail.NewClient(cfg.Mail)

	return &Services{
		User:       service.NewUserService(userRepo, invitationRepo, kv),
		Invitation: service.NewInvitationService(invitationRepo, userRepo, mailer, cfg.Server.BaseURL),
		Upload: service.NewUploadService(storage, kv, mediaRepo, service.UploadOptions{
			MaxSize:       cfg.Upload.MaxSize,
			PresignExpiry: time.Duration(cfg.MinIO.PresignExpiry) * time.Minute,
			PendingTTL:    time.Duration(cfg.Upload.PendingTTLHours) * time.Hour,
		}),
		Media:  service.NewMediaService(mediaRepo, folderRepo, storage, kv, cfg.Upload.MaxSize, cfg.Storage),
		Folder: service.NewFolderService(folderRepo, kv),
		Tag:    service.NewTagService(tagRepo),
		KV:     kv,
	}
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	svc := BuildServices(db, cfg)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(svc.User, svc.Invitation),
		InvitationHandler: handler.NewInvitationHandler(svc.Invitation),
		UploadHandler:     handler.NewUploadHandler(svc.Upload, cfg.Upload.MaxSize),
		MediaHandler:      handler.NewMediaHandler(svc.Media),
		FolderHandler:     handler.NewFolderHandler(svc.Folder),
		TagHandler:        handler.NewTagHandler(svc.Tag),
		TokenBlacklist:    svc.KV,
		AllowedOrigins:    cfg.Server.CORSOrigins,
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewPendingUploadCleanupJob(svc.Upload, svc.KV),
		job.NewInvitationCleanupJob(svc.Invitation, svc.KV),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
