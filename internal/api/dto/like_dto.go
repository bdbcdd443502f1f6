package dto

import "vidtube-go/internal/model"

// LikeToggleData 点赞切换结果
type LikeToggleData struct {
	TargetType model.LikeTarget `json:"targetType"`
	TargetID   int64            `json:"targetId"`
	IsLiked    bool             `json:"isLiked"`
	LikesCount int64            `json:"likesCount"`
}
