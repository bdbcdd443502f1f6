package middleware

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/media"
	"vidtube-go/pkg/apperr"
	"vidtube-go/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const contextKeyStaged = "stagedFiles"

// UploadField 需要暂存的表单文件字段
type UploadField struct {
	Name string
	Kind media.Kind
}

// Upload 将 multipart 文件暂存到 dir，请求结束后删除暂存文件。
// 缺失的字段直接跳过，由业务层判断是否必填。
func Upload(dir string, maxBytes int64, fields ...UploadField) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		staged := make(map[string]string, len(fields))
		defer func() {
			for _, path := range staged {
				if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
					logger.Warn("Failed to remove staged file", zap.String("path", path), zap.Error(err))
				}
			}
		}()

		for _, field := range fields {
			path, err := stageFile(c, dir, field)
			if err != nil {
				response.Abort(c, err)
				return
			}
			if path != "" {
				staged[field.Name] = path
			}
		}

		c.Set(contextKeyStaged, staged)
		c.Next()
	}
}

func stageFile(c *gin.Context, dir string, field UploadField) (string, error) {
	fh, err := c.FormFile(field.Name)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return "", apperr.Validation("Uploaded file is too large")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return "", nil
		default:
			return "", apperr.Validation("Invalid multipart form", err.Error())
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Upload("Failed to prepare upload directory", err)
	}
	path := filepath.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", apperr.Upload("Failed to stage uploaded file", err)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil || !media.Matches(mt.String(), field.Kind) {
		_ = os.Remove(path)
		return "", apperr.Validation("Invalid file type for " + field.Name)
	}
	return path, nil
}

// StagedFile 返回字段对应的暂存路径，未上传时为空
func StagedFile(c *gin.Context, name string) string {
	val, exists := c.Get(contextKeyStaged)
	if !exists {
		return ""
	}
	staged, _ := val.(map[string]string)
	return staged[name]
}
