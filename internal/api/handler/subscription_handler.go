package handler

import (
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/response"
	"vidtube-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle 订阅或取消订阅频道
// @Summary 切换订阅
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道ID"
// @Success 200 {object} response.Response{data=dto.SubscriptionToggleData}
// @Failure 400 {object} response.ErrorResponse "不能订阅自己"
// @Failure 404 {object} response.ErrorResponse "频道不存在"
// @Router /subscription/c/{channelId} [post]
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := pathID(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.subscriptionService.Toggle(c.Request.Context(), middleware.CurrentUserID(c), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Unsubscribed"
	if data.IsSubscribed {
		message = "Subscribed"
	}
	response.OK(c, message, data)
}

// Subscribers 频道订阅者
// @Summary 频道订阅者
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param channelId path int true "频道ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.OwnerBrief]}
// @Router /subscription/c/{channelId} [get]
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, err := pathID(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.subscriptionService.Subscribers(c.Request.Context(), channelID, pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Subscribers fetched successfully", page)
}

// SubscribedChannels 已订阅的频道
// @Summary 已订阅的频道
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param subscriberId path int true "订阅者ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.ChannelBrief]}
// @Router /subscription/u/{subscriberId} [get]
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, err := pathID(c, "subscriberId")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.subscriptionService.SubscribedChannels(c.Request.Context(), subscriberID, pagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Subscribed channels fetched successfully", page)
}
