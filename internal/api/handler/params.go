package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/config"
	"vidtube-go/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的正整数 ID
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid " + name)
	}
	return id, nil
}

// pagination 解析 page/limit，非法值回退默认
func pagination(c *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return dto.NewPagination(page, limit)
}

// bindJSON 空请求体视为空对象，由业务层校验必填字段
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("Request body is too large")
		}
		return apperr.Validation("Invalid request body", err.Error())
	}
	return nil
}

// CookieOptions 令牌 Cookie 属性，设置与清除使用同一组参数
type CookieOptions struct {
	Secure        bool
	SameSite      http.SameSite
	Domain        string
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

func NewCookieOptions(cfg *config.AuthConfig) CookieOptions {
	return CookieOptions{
		Secure:        cfg.CookieSecure,
		SameSite:      parseSameSite(cfg.CookieSameSite),
		Domain:        cfg.CookieDomain,
		AccessMaxAge:  cfg.AccessTokenTTL(),
		RefreshMaxAge: cfg.RefreshTokenTTL(),
	}
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}

func (o CookieOptions) set(c *gin.Context, name, value string, maxAge time.Duration) {
	c.SetSameSite(o.SameSite)
	c.SetCookie(name, value, int(maxAge.Seconds()), "/", o.Domain, o.Secure, true)
}

func (o CookieOptions) clear(c *gin.Context, name string) {
	c.SetSameSite(o.SameSite)
	c.SetCookie(name, "", -1, "/", o.Domain, o.Secure, true)
}
