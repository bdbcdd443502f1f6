package model

import "time"

// WatchHistory 观看历史，(UserID, VideoID) 唯一，按 ID 保持首次观看顺序
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_watch_histories_pair,priority:1;comment:用户ID" json:"userId"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_watch_histories_pair,priority:2;index:idx_watch_histories_video_id;comment:视频ID" json:"videoId"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:首次观看时间" json:"createdAt"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
