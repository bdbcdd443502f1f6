package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create 发布动态
// @Summary 发布动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContentRequest true "动态内容"
// @Success 201 {object} response.Response{data=dto.TweetInfo}
// @Failure 400 {object} response.ErrorResponse "内容为空"
// @Router /tweets [post]
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.ContentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	tweet, err := h.tweetService.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Tweet created successfully", tweet)
}

// ListByUser 用户动态列表
// @Summary 用户动态列表
// @Tags 动态
// @Produce json
// @Param userId path int true "用户ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.TweetInfo]}
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /tweets/user/{userId} [get]
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.tweetService.ListByUser(c.Request.Context(), userID, middleware.CurrentUserID(c), pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User tweets fetched successfully", page)
}

// Update 修改动态
// @Summary 修改动态
// @Tags 动态
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Param request body dto.ContentRequest true "动态内容"
// @Success 200 {object} response.Response{data=dto.TweetInfo}
// @Failure 403 {object} response.ErrorResponse "非作者"
// @Failure 404 {object} response.ErrorResponse "动态不存在"
// @Router /tweets/{tweetId} [patch]
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, err := pathID(c, "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ContentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	tweet, err := h.tweetService.Update(c.Request.Context(), middleware.CurrentUserID(c), tweetID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tweet updated successfully", tweet)
}

// Delete 删除动态
// @Summary 删除动态
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "非作者"
// @Failure 404 {object} response.ErrorResponse "动态不存在"
// @Router /tweets/{tweetId} [delete]
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := pathID(c, "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.tweetService.Delete(c.Request.Context(), middleware.CurrentUserID(c), tweetID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tweet deleted successfully", gin.H{})
}
