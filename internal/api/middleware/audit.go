package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxLoggedBody = 16384

var (
	secretField    = regexp.MustCompile(`"(password|current_password|new_password|token|invite_url)"\s*:\s*"(?:[^"\\]|\\.)*"`)
	invitationPath = regexp.MustCompile(`^(/api/auth/invitations/)[^/]+`)
)

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxLoggedBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// maskSecrets 日志中不出现明文密码、登录 token 与邀请 token
func maskSecrets(body []byte) string {
	return secretField.ReplaceAllString(string(body), `"$1":"***"`)
}

func maskPath(path string) string {
	return invitationPath.ReplaceAllString(path, "${1}***")
}

func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqBody := ""
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			reqBody = "[multipart]"
		} else if c.Request.Body != nil {
			raw, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			if len(raw) > maxLoggedBody {
				raw = raw[:maxLoggedBody]
			}
			reqBody = maskSecrets(raw)
		}

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", maskPath(c.Request.URL.Path)),
			log.String("query", decodedQuery),
			log.String("req_body", reqBody),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("user_id", c.GetString("user_id")),
			log.String("res_body", maskSecrets(w.body.Bytes())),
		)
	}
}
