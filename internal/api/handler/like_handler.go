package handler

import (
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/model"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo 切换视频点赞
// @Summary 切换视频点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.LikeToggleData}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /like/toggle/video/{videoId} [post]
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, model.LikeTargetVideo, "videoId")
}

// ToggleComment 切换评论点赞
// @Summary 切换评论点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response{data=dto.LikeToggleData}
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /like/toggle/comment/{commentId} [post]
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, model.LikeTargetComment, "commentId")
}

// ToggleTweet 切换动态点赞
// @Summary 切换动态点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param tweetId path int true "动态ID"
// @Success 200 {object} response.Response{data=dto.LikeToggleData}
// @Failure 404 {object} response.ErrorResponse "动态不存在"
// @Router /like/toggle/tweet/{tweetId} [post]
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, model.LikeTargetTweet, "tweetId")
}

func (h *LikeHandler) toggle(c *gin.Context, target model.LikeTarget, param string) {
	targetID, err := pathID(c, param)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.likeService.Toggle(c.Request.Context(), middleware.CurrentUserID(c), target, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Unliked"
	if data.IsLiked {
		message = "Liked"
	}
	response.OK(c, message, data)
}

// LikedVideos 点赞过的视频
// @Summary 点赞过的视频
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.VideoInfo]}
// @Router /like/videos [get]
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	page, err := h.likeService.LikedVideos(c.Request.Context(), middleware.CurrentUserID(c), pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Liked videos fetched successfully", page)
}
