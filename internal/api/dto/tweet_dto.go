package dto

import (
	"time"

	"vidtube-go/internal/model"
)

// TweetInfo 动态信息
type TweetInfo struct {
	ID         int64       `json:"id"`
	Content    string      `json:"content"`
	Owner      *OwnerBrief `json:"owner"`
	LikesCount int64       `json:"likesCount"`
	IsLiked    bool        `json:"isLiked"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func NewTweetInfo(t *model.Tweet) *TweetInfo {
	return &TweetInfo{
		ID:        t.ID,
		Content:   t.Content,
		Owner:     NewOwnerBrief(&t.Owner),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
