package handler

import (
	"TaylorDAM/internal/pkg/response"
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/service"

	"github.com/gin-gonic/gin"
)

// actorFrom 读取 AuthMiddleware 注入的身份
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		ID:   c.GetString("user_id"),
		Role: c.GetString("role"),
	}
}

// bindJSON 解析并校验请求体，失败时已写入响应
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Error(c, err)
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}
