package model

import "time"

// Subscription 订阅关系，Subscriber 订阅 Channel
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriptions_pair,priority:1;comment:订阅者ID" json:"subscriberId"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriptions_pair,priority:2;index:idx_subscriptions_channel_id;comment:频道用户ID" json:"channelId"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"createdAt"`

	Subscriber User `gorm:"foreignKey:SubscriberID" json:"-"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
