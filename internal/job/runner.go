package job

import (
	"TaylorDAM/internal/pkg/logger"
	"TaylorDAM/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// runLocked 多实例部署时同一时刻只允许一个实例执行任务
func runLocked(name, lockKey string, kv service.KVStore, ttl time.Duration, fn func(ctx context.Context) error) {
	traceID := "job-" + name + "-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	ok, err := kv.TryLock(ctx, lockKey, traceID, ttl)
	if err != nil {
		log.ErrorContext(ctx, "acquire job lock error", "job", name, "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "job is running on another instance, skip", "job", name)
		return
	}
	defer kv.UnLock(ctx, lockKey, traceID)

	start := time.Now()
	if err = fn(ctx); err != nil {
		log.ErrorContext(ctx, "job failed", "job", name, "err", err)
		return
	}
	log.InfoContext(ctx, "job finished", "job", name, "cost", time.Since(start).String())
}
