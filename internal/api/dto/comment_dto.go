package dto

import (
	"time"

	"vidtube-go/internal/model"
)

// ContentRequest 评论与动态共用的请求体
type ContentRequest struct {
	Content string `json:"content" binding:"omitempty,max=5000"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID          int64       `json:"id"`
	VideoID     int64       `json:"videoId"`
	Content     string      `json:"content"`
	CreatedBy   *OwnerBrief `json:"createdBy"`
	LikesCount  int64       `json:"likesCount"`
	IsMyComment bool        `json:"isMyComment"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewCommentInfo(c *model.Comment) *CommentInfo {
	return &CommentInfo{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Content:   c.Content,
		CreatedBy: NewOwnerBrief(&c.Owner),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
