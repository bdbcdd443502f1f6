package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfile 修改资料
// @Summary 修改昵称与邮箱
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "资料"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 409 {object} response.ErrorResponse "邮箱已被占用"
// @Router /user/update-profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Account details updated successfully", user)
}

// UpdateAvatar 更换头像
// @Summary 更换头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 400 {object} response.ErrorResponse "头像缺失"
// @Failure 500 {object} response.ErrorResponse "上传失败"
// @Router /user/update-avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	user, err := h.userService.UpdateAvatar(c.Request.Context(), middleware.CurrentUserID(c), middleware.StagedFile(c, "avatar"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Avatar updated successfully", user)
}

// UpdateCoverImage 更换频道封面
// @Summary 更换频道封面
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param coverImage formData file true "频道封面"
// @Success 200 {object} response.Response{data=dto.UserInfo}
// @Failure 400 {object} response.ErrorResponse "封面缺失"
// @Failure 500 {object} response.ErrorResponse "上传失败"
// @Router /user/update-coverImage [patch]
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	user, err := h.userService.UpdateCoverImage(c.Request.Context(), middleware.CurrentUserID(c), middleware.StagedFile(c, "coverImage"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cover image updated successfully", user)
}

// ChannelProfile 频道主页
// @Summary 频道主页
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ChannelProfile}
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /user/c/{username} [get]
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userService.ChannelProfile(c.Request.Context(), c.Param("username"), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User channel fetched successfully", profile)
}

// WatchHistory 观看历史
// @Summary 观看历史
// @Description 按最近观看时间倒序，同一视频只出现一次
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.VideoInfo]}
// @Router /user/watch-history [get]
func (h *UserHandler) WatchHistory(c *gin.Context) {
	page, err := h.userService.WatchHistory(c.Request.Context(), middleware.CurrentUserID(c), pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Watch history fetched successfully", page)
}

