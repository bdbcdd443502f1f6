package dto

import (
	"time"

	"vidtube-go/internal/model"
)

// CreatePlaylistRequest 创建播放列表
type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"omitempty,max=128"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// UpdatePlaylistRequest 修改播放列表，空值不修改
type UpdatePlaylistRequest struct {
	Name        string `json:"name" binding:"omitempty,max=128"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// PlaylistInfo 播放列表详情
type PlaylistInfo struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Owner       *OwnerBrief  `json:"owner"`
	Videos      []*VideoInfo `json:"videos"`
	VideosCount int          `json:"videosCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewPlaylistInfo 需预加载 Owner 与 Entries.Video.Owner
func NewPlaylistInfo(p *model.Playlist) *PlaylistInfo {
	videos := make([]*VideoInfo, 0, len(p.Entries))
	for i := range p.Entries {
		videos = append(videos, NewVideoInfo(&p.Entries[i].Video))
	}
	return &PlaylistInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       NewOwnerBrief(&p.Owner),
		Videos:      videos,
		VideosCount: len(videos),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
