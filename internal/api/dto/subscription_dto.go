package dto

// SubscriptionToggleData 订阅切换结果
type SubscriptionToggleData struct {
	ChannelID        int64 `json:"channelId"`
	IsSubscribed     bool  `json:"isSubscribed"`
	SubscribersCount int64 `json:"subscribersCount"`
}

// ChannelBrief 已订阅频道
type ChannelBrief struct {
	*OwnerBrief
	SubscribersCount int64 `json:"subscribersCount"`
}
