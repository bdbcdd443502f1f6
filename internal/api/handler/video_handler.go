package handler

import (
	"strconv"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List 视频列表
// @Summary 视频列表
// @Description 标题或简介模糊匹配，userId 过滤作者，仅作者本人可见未发布视频
// @Tags 视频
// @Produce json
// @Param query query string false "关键词"
// @Param sortBy query string false "排序字段 createdAt|views|duration|title"
// @Param sortType query string false "asc|desc"
// @Param userId query int false "作者ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.VideoInfo]}
// @Failure 400 {object} response.ErrorResponse "排序参数无效"
// @Router /video [get]
func (h *VideoHandler) List(c *gin.Context) {
	q := &dto.VideoListQuery{
		Query:      c.Query("query"),
		SortBy:     c.Query("sortBy"),
		SortType:   c.Query("sortType"),
		Pagination: pagination(c),
	}
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, apperr.Validation("Invalid userId"))
			return
		}
		q.UserID = &id
	}

	page, err := h.videoService.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Videos fetched successfully", page)
}

// Search 全文搜索
// @Summary 搜索视频
// @Tags 视频
// @Produce json
// @Param q query string true "关键词"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.VideoInfo]}
// @Router /video/search [get]
func (h *VideoHandler) Search(c *gin.Context) {
	page, err := h.videoService.Search(c.Request.Context(), &dto.VideoSearchQuery{
		Q:          c.Query("q"),
		Pagination: pagination(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Videos fetched successfully", page)
}

// Publish 发布视频
// @Summary 发布视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string true "简介"
// @Param videoFile formData file true "视频文件"
// @Param thumbnail formData file true "缩略图"
// @Success 201 {object} response.Response{data=dto.VideoInfo}
// @Failure 400 {object} response.ErrorResponse "参数缺失"
// @Failure 500 {object} response.ErrorResponse "上传失败"
// @Router /video [post]
func (h *VideoHandler) Publish(c *gin.Context) {
	video, err := h.videoService.Publish(c.Request.Context(), middleware.CurrentUserID(c), &dto.PublishVideoInput{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		VideoPath:     middleware.StagedFile(c, "videoFile"),
		ThumbnailPath: middleware.StagedFile(c, "thumbnail"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Video published successfully", video)
}

// Get 视频详情，每次访问计一次播放
// @Summary 视频详情
// @Tags 视频
// @Produce json
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoDetail}
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /video/{videoId} [get]
func (h *VideoHandler) Get(c *gin.Context) {
	id, err := pathID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	video, err := h.videoService.Get(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video fetched successfully", video)
}

// Update 修改视频
// @Summary 修改视频
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param title formData string false "标题"
// @Param description formData string false "简介"
// @Param thumbnail formData file false "缩略图"
// @Success 200 {object} response.Response{data=dto.VideoInfo}
// @Failure 400 {object} response.ErrorResponse "没有可修改的字段"
// @Failure 403 {object} response.ErrorResponse "非作者"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /video/{videoId} [patch]
func (h *VideoHandler) Update(c *gin.Context) {
	id, err := pathID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}

	in := &dto.UpdateVideoInput{ThumbnailPath: middleware.StagedFile(c, "thumbnail")}
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}

	video, err := h.videoService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video updated successfully", video)
}

// Delete 删除视频
// @Summary 删除视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "非作者"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /video/{videoId} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.videoService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video deleted successfully", gin.H{})
}

// TogglePublish 切换发布状态
// @Summary 切换发布状态
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.VideoInfo}
// @Failure 403 {object} response.ErrorResponse "非作者"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /video/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	id, err := pathID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}
	video, err := h.videoService.TogglePublish(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Publish status toggled successfully", video)
}
