package model

import "time"

// Video 视频模型
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID     int64     `gorm:"not null;index:idx_videos_owner_id;index:idx_videos_owner_published,priority:1;comment:上传者ID" json:"ownerId"`
	VideoFile   string    `gorm:"size:500;not null;comment:视频文件地址" json:"videoFile"`
	Thumbnail   string    `gorm:"size:500;not null;comment:缩略图地址" json:"thumbnail"`
	Title       string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description string    `gorm:"type:text;not null;comment:视频描述" json:"description"`
	Duration    float64   `gorm:"not null;default:0;comment:视频时长（秒）" json:"duration"`
	Views       int64     `gorm:"not null;default:0;index:idx_videos_views;comment:播放量" json:"views"`
	IsPublished bool      `gorm:"not null;index:idx_videos_owner_published,priority:2;comment:是否公开" json:"isPublished"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Video) TableName() string {
	return "videos"
}
