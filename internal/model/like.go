package model

import "time"

// LikeTarget 点赞目标类型，(LikedBy, TargetType, TargetID) 唯一
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid 是否为已知目标类型
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like 点赞记录，存在即为已点赞
type Like struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	LikedBy    int64      `gorm:"not null;uniqueIndex:uq_likes_user_target,priority:1;comment:点赞用户ID" json:"likedBy"`
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:uq_likes_user_target,priority:2;index:idx_likes_target,priority:1;comment:目标类型" json:"targetType"`
	TargetID   int64      `gorm:"not null;uniqueIndex:uq_likes_user_target,priority:3;index:idx_likes_target,priority:2;comment:目标ID" json:"targetId"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;comment:点赞时间" json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
