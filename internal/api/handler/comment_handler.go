package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo 视频评论列表
// @Summary 视频评论列表
// @Tags 评论
// @Produce json
// @Param videoId path int true "视频ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.CommentInfo]}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /comments/{videoId} [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.commentService.List(c.Request.Context(), videoID, middleware.CurrentUserID(c), pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Comments fetched successfully", page)
}

// Create 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo}
// @Failure 400 {object} response.ErrorResponse "内容为空"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /comments/{videoId} [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ContentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.CurrentUserID(c), videoID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Comment added successfully", comment)
}

// Update 修改评论
// @Summary 修改评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Param request body dto.ContentRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentInfo}
// @Failure 403 {object} response.ErrorResponse "非作者"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/c/{commentId} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ContentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.CurrentUserID(c), commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Comment updated successfully", comment)
}

// Delete 删除评论
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "评论ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "非作者"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/c/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), middleware.CurrentUserID(c), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Comment deleted successfully", gin.H{})
}
