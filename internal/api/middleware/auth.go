package middleware

import (
	"context"
	"strings"

	"vidtube-go/internal/api/response"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyUser   = "currentUser"
	ContextKeyClaims = "currentClaims"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Authenticator 校验访问令牌并返回当前用户
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *utils.AccessClaims, error)
}

// AuthRequired 认证中间件，令牌取自 accessToken Cookie 或 Bearer 头
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := auth.Authenticate(c.Request.Context(), extractToken(c))
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth 有合法令牌时注入用户，否则按匿名继续
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if user, claims, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(ContextKeyUser, user)
				c.Set(ContextKeyClaims, claims)
			}
		}
		c.Next()
	}
}

// CurrentUser 从 Gin Context 中获取当前登录用户
func CurrentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok
}

// CurrentUserID 当前用户 ID，匿名为 0
func CurrentUserID(c *gin.Context) int64 {
	if user, ok := CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

// CurrentClaims 当前访问令牌的 Claims，登出时用于吊销
func CurrentClaims(c *gin.Context) *utils.AccessClaims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, _ := val.(*utils.AccessClaims)
	return claims
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
