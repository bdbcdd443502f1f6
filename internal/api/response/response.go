package response

import (
	"net/http"

	"vidtube-go/pkg/apperr"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一成功响应，HTTP 状态码与 StatusCode 一致
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 统一错误响应，Errors 总是数组
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func Fail(c *gin.Context, statusCode int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	})
}

// Error 将业务错误转换为失败响应，5xx 记录日志并隐藏内部细节
func Error(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		logger.Error("Unhandled error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(appErr.Kind.String(),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	Fail(c, status, appErr.Message, appErr.Details...)
}

// Abort 失败响应并终止后续处理，用于中间件
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
