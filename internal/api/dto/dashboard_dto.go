package dto

// ChannelStats 频道统计
type ChannelStats struct {
	ChannelID        int64 `json:"channelId"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}
