package handler

import (
	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create 创建播放列表
// @Summary 创建播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePlaylistRequest true "名称与简介"
// @Success 201 {object} response.Response{data=dto.PlaylistInfo}
// @Failure 400 {object} response.ErrorResponse "名称为空"
// @Failure 409 {object} response.ErrorResponse "同名列表已存在"
// @Router /playlist [post]
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.CreatePlaylistRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	playlist, err := h.playlistService.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Playlist created successfully", playlist)
}

// Get 播放列表详情
// @Summary 播放列表详情
// @Tags 播放列表
// @Produce json
// @Param playlistId path int true "列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo}
// @Failure 404 {object} response.ErrorResponse "列表不存在"
// @Router /playlist/{playlistId} [get]
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}
	playlist, err := h.playlistService.Get(c.Request.Context(), playlistID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Playlist fetched successfully", playlist)
}

// ListByUser 用户的播放列表
// @Summary 用户的播放列表
// @Tags 播放列表
// @Produce json
// @Param userId path int true "用户ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.PlaylistInfo]}
// @Router /playlist/user/{userId} [get]
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.playlistService.ListByUser(c.Request.Context(), userID, pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User playlists fetched successfully", page)
}

// Update 修改播放列表
// @Summary 修改播放列表
// @Tags 播放列表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "列表ID"
// @Param request body dto.UpdatePlaylistRequest true "名称与简介"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo}
// @Failure 403 {object} response.ErrorResponse "非创建者"
// @Failure 404 {object} response.ErrorResponse "列表不存在"
// @Failure 409 {object} response.ErrorResponse "同名列表已存在"
// @Router /playlist/{playlistId} [patch]
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdatePlaylistRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	playlist, err := h.playlistService.Update(c.Request.Context(), middleware.CurrentUserID(c), playlistID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Playlist updated successfully", playlist)
}

// Delete 删除播放列表
// @Summary 删除播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param playlistId path int true "列表ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "非创建者"
// @Failure 404 {object} response.ErrorResponse "列表不存在"
// @Router /playlist/{playlistId} [delete]
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.playlistService.Delete(c.Request.Context(), middleware.CurrentUserID(c), playlistID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Playlist deleted successfully", gin.H{})
}

// AddVideo 添加视频到播放列表
// @Summary 添加视频到播放列表
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param playlistId path int true "列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo}
// @Failure 400 {object} response.ErrorResponse "视频已在列表中"
// @Failure 403 {object} response.ErrorResponse "非创建者"
// @Failure 404 {object} response.ErrorResponse "视频或列表不存在"
// @Router /playlist/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, playlistID, ok := entryIDs(c)
	if !ok {
		return
	}
	playlist, err := h.playlistService.AddVideo(c.Request.Context(), middleware.CurrentUserID(c), videoID, playlistID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video added to playlist", playlist)
}

// RemoveVideo 从播放列表移除视频
// @Summary 从播放列表移除视频
// @Tags 播放列表
// @Produce json
// @Security BearerAuth
// @Param videoId path int true "视频ID"
// @Param playlistId path int true "列表ID"
// @Success 200 {object} response.Response{data=dto.PlaylistInfo}
// @Failure 400 {object} response.ErrorResponse "视频不在列表中"
// @Failure 403 {object} response.ErrorResponse "非创建者"
// @Failure 404 {object} response.ErrorResponse "列表不存在"
// @Router /playlist/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, playlistID, ok := entryIDs(c)
	if !ok {
		return
	}
	playlist, err := h.playlistService.RemoveVideo(c.Request.Context(), middleware.CurrentUserID(c), videoID, playlistID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Video removed from playlist", playlist)
}

func entryIDs(c *gin.Context) (videoID, playlistID int64, ok bool) {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	playlistID, err = pathID(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	return videoID, playlistID, true
}
