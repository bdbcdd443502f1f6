// Package media 定义外部媒体存储的契约，以及上传前的文件探测。
package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind 资源类别
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ErrForeignURL 地址不属于当前存储
var ErrForeignURL = errors.New("url does not belong to this store")

// Asset 上传结果
type Asset struct {
	URL         string
	Key         string
	ContentType string
	Size        int64
	// Duration 视频时长（秒），图片为 0
	Duration float64
}

// Store 外部媒体存储
type Store interface {
	// Upload 上传本地暂存文件并返回公开地址
	Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error)
	// Delete 按公开地址删除资源，空地址视为成功
	Delete(ctx context.Context, url string) error
}

// ObjectKey 生成对象名：<kind>s/<yyyy>/<mm>/<uuid><ext>
func ObjectKey(kind Kind, localPath string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	return path.Join(string(kind)+"s", now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}

// PublicURL 拼接公开访问地址
func PublicURL(baseURL, key string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		return key
	}
	return fmt.Sprintf("%s/%s", base, key)
}

// KeyFromURL 由公开地址反推对象名
func KeyFromURL(baseURL, url string) (string, error) {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		return strings.TrimLeft(url, "/"), nil
	}
	if !strings.HasPrefix(url, base+"/") {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	return strings.TrimPrefix(url, base+"/"), nil
}
