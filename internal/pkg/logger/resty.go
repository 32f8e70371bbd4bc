package logger

import (
	log "log/slog"

	"github.com/go-resty/resty/v2"
)

// AttachResty 为 resty 客户端挂载请求日志，不记录请求体
func AttachResty(client *resty.Client, name string) {
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		req := resp.Request
		fields := []any{
			log.String("client", name),
			log.String("method", req.Method),
			log.String("url", req.URL),
			log.Int("status", resp.StatusCode()),
			log.Duration("latency", resp.Time()),
		}
		if resp.IsError() {
			log.WarnContext(req.Context(), "HTTP_CLIENT_ERROR_STATUS", fields...)
		} else {
			log.InfoContext(req.Context(), "HTTP_CLIENT", fields...)
		}
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		log.ErrorContext(req.Context(), "HTTP_CLIENT_ERROR",
			log.String("client", name),
			log.String("method", req.Method),
			log.String("url", req.URL),
			log.Any("err", err))
	})
}
