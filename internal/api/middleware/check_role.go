package middleware

import (
	"TaylorDAM/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户的角色是否在允许列表中
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		hasPermission := false
		for _, required := range requiredRoles {
			if required == role {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
