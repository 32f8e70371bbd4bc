package response

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/pkg/util"
	"TaylorDAM/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var validationErr *util.ValidationError
	if errors.As(err, &validationErr) {
		Fail(c, http.StatusBadRequest, validationErr.Error())
		return
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, service.ErrParamInvalid.Error())
		return
	}

	var stdTypeErr *stdjson.UnmarshalTypeError
	var stdSyntaxErr *stdjson.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.As(err, &stdTypeErr) || errors.As(err, &stdSyntaxErr) || errors.As(err, &typeErr) {
		Fail(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	for target, code := range service.ErrorMap {
		if errors.Is(err, target) {
			Fail(c, code, target.Error())
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "Unhandled error", "path", c.FullPath(), "err", err)
	Fail(c, http.StatusInternalServerError, service.ErrUnexpected.Error())
}
