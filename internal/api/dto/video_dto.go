package dto

import (
	"time"

	"vidtube-go/internal/model"
)

// VideoListQuery 视频列表查询参数
type VideoListQuery struct {
	Query    string
	SortBy   string
	SortType string
	UserID   *int64
	Pagination
}

// PublishVideoInput 发布视频参数，文件已暂存到本地
type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput 更新视频参数，nil 表示不修改
type UpdateVideoInput struct {
	Title         *string
	Description   *string
	ThumbnailPath string
}

// VideoInfo 视频信息
type VideoInfo struct {
	ID          int64       `json:"id"`
	VideoFile   string      `json:"videoFile"`
	Thumbnail   string      `json:"thumbnail"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    float64     `json:"duration"`
	Views       int64       `json:"views"`
	IsPublished bool        `json:"isPublished"`
	OwnerID     int64       `json:"ownerId"`
	Owner       *OwnerBrief `json:"owner,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewVideoInfo(v *model.Video) *VideoInfo {
	return &VideoInfo{
		ID:          v.ID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		OwnerID:     v.OwnerID,
		Owner:       NewOwnerBrief(&v.Owner),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// NewVideoInfos 批量转换
func NewVideoInfos(videos []*model.Video) []*VideoInfo {
	out := make([]*VideoInfo, 0, len(videos))
	for _, v := range videos {
		out = append(out, NewVideoInfo(v))
	}
	return out
}

// VideoDetail 视频详情，附带点赞信息
type VideoDetail struct {
	*VideoInfo
	LikesCount int64 `json:"likesCount"`
	IsLiked    bool  `json:"isLiked"`
}

// DashboardVideo 创作者后台的视频条目
type DashboardVideo struct {
	*VideoInfo
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
}
