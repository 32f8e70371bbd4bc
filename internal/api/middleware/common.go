package middleware

import (
	"TaylorDAM/internal/pkg/util"
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
)

// CommonMiddleware 解析前端站点地址，未配置 base_url 时用于生成邀请链接
func CommonMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		baseURL := ""
		if origin := c.GetHeader("Origin"); origin != "" {
			if u, err := url.Parse(origin); err == nil && u.Host != "" {
				baseURL = fmt.Sprintf("%s://%s", u.Scheme, u.Host)
			}
		}
		if baseURL == "" {
			if referer := c.GetHeader("Referer"); referer != "" {
				if u, err := url.Parse(referer); err == nil && u.Host != "" {
					baseURL = fmt.Sprintf("%s://%s", u.Scheme, u.Host)
				}
			}
		}

		if baseURL == "" {
			scheme := "http"
			if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
				scheme = "https"
			}
			baseURL = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
		}

		c.Request = c.Request.WithContext(util.WithBaseURL(c.Request.Context(), baseURL))
		c.Next()
	}
}
