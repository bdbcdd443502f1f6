package model

import "time"

// Playlist 播放列表，同一用户下名称唯一
type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:播放列表ID" json:"id"`
	OwnerID     int64     `gorm:"not null;uniqueIndex:uq_playlists_owner_name,priority:1;comment:创建者ID" json:"ownerId"`
	Name        string    `gorm:"size:128;not null;uniqueIndex:uq_playlists_owner_name,priority:2;comment:名称" json:"name"`
	Description string    `gorm:"type:text;not null;default:'';comment:描述" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`

	Owner   User            `gorm:"foreignKey:OwnerID" json:"-"`
	Entries []PlaylistVideo `gorm:"foreignKey:PlaylistID" json:"-"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo 播放列表条目，Position 记录加入顺序
type PlaylistVideo struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaylistID int64     `gorm:"not null;uniqueIndex:uq_playlist_videos_pair,priority:1;comment:播放列表ID" json:"playlistId"`
	VideoID    int64     `gorm:"not null;uniqueIndex:uq_playlist_videos_pair,priority:2;index:idx_playlist_videos_video_id;comment:视频ID" json:"videoId"`
	Position   int       `gorm:"not null;default:0;comment:排序位置" json:"position"`
	CreatedAt  time.Time `gorm:"autoCreateTime;comment:加入时间" json:"createdAt"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
