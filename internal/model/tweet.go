package model

import "time"

// Tweet 短动态
type Tweet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:动态ID" json:"id"`
	OwnerID   int64     `gorm:"not null;index:idx_tweets_owner_created,priority:1;comment:发布者ID" json:"ownerId"`
	Content   string    `gorm:"type:text;not null;comment:内容" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_tweets_owner_created,priority:2;comment:发布时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Tweet) TableName() string {
	return "tweets"
}
