package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	cookies     CookieOptions
}

func NewAuthHandler(authService *service.AuthService, cookies CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户，头像必填，封面可选
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "用户名"
// @Param email formData string true "邮箱"
// @Param fullName formData string true "昵称"
// @Param password formData string true "密码"
// @Param avatar formData file true "头像"
// @Param coverImage formData file false "频道封面"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已存在"
// @Router /user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	user, err := h.authService.Register(c.Request.Context(), &dto.RegisterInput{
		Username:       c.PostForm("username"),
		Email:          c.PostForm("email"),
		FullName:       c.PostForm("fullName"),
		Password:       c.PostForm("password"),
		AvatarPath:     middleware.StagedFile(c, "avatar"),
		CoverImagePath: middleware.StagedFile(c, "coverImage"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "User registered successfully", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱登录，令牌同时写入 httpOnly Cookie
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.LoginData} "登录成功"
// @Failure 401 {object} response.ErrorResponse "密码错误"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, &data.TokenPair)
	response.OK(c, "User logged in successfully", data)
}

// Logout 退出登录
// @Summary 退出登录
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "已退出"
// @Router /user/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.authService.Logout(c.Request.Context(), middleware.CurrentUserID(c), middleware.CurrentClaims(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.cookies.clear(c, middleware.AccessTokenCookie)
	h.cookies.clear(c, middleware.RefreshTokenCookie)
	response.OK(c, "User logged out", gin.H{})
}

// RefreshTokens 刷新令牌
// @Summary 刷新访问令牌
// @Description 刷新令牌取自 Cookie 或请求体，成功后轮换两种令牌
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "刷新令牌"
// @Success 200 {object} response.Response{data=dto.TokenPair} "刷新成功"
// @Failure 401 {object} response.ErrorResponse "刷新令牌无效或已使用"
// @Router /user/refresh-tokens [post]
func (h *AuthHandler) RefreshTokens(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req dto.RefreshTokenRequest
		if err := bindJSON(c, &req); err != nil {
			response.Error(c, err)
			return
		}
		token = req.RefreshToken
	}

	pair, err := h.authService.RefreshTokens(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	response.OK(c, "Access token refreshed", pair)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response "修改成功"
// @Failure 401 {object} response.ErrorResponse "旧密码错误"
// @Router /user/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password changed successfully", gin.H{})
}

// CurrentUser 当前登录用户
// @Summary 获取当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Router /user/current-user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, service.ErrUnauthorized)
		return
	}
	response.OK(c, "Current user fetched successfully", dto.NewUserInfo(user))
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, pair *dto.TokenPair) {
	h.cookies.set(c, middleware.AccessTokenCookie, pair.AccessToken, h.cookies.AccessMaxAge)
	h.cookies.set(c, middleware.RefreshTokenCookie, pair.RefreshToken, h.cookies.RefreshMaxAge)
}
