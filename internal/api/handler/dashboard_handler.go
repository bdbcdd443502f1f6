package handler

import (
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats 频道统计
// @Summary 频道统计
// @Description 视频数、总播放、订阅数，以及视频、评论、动态获得的点赞总数
// @Tags 控制台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.ChannelStats}
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Channel stats fetched successfully", stats)
}

// Videos 频道视频列表
// @Summary 频道视频列表
// @Description 包含未发布视频，附带点赞数与评论数
// @Tags 控制台
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.DashboardVideo]}
// @Router /dashboard/videos [get]
func (h *DashboardHandler) Videos(c *gin.Context) {
	page, err := h.dashboardService.Videos(c.Request.Context(), middleware.CurrentUserID(c), pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Channel videos fetched successfully", page)
}
