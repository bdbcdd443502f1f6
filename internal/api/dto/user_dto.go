package dto

import (
	"time"

	"vidtube-go/internal/model"
)

// UserInfo 用户信息（不含密码与刷新令牌）
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewUserInfo(u *model.User) *UserInfo {
	return &UserInfo{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// OwnerBrief 嵌套在视频、评论、动态中的用户投影
type OwnerBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

func NewOwnerBrief(u *model.User) *OwnerBrief {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &OwnerBrief{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

// UpdateProfileRequest 修改资料请求
type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"omitempty,max=128"`
	Email    string `json:"email" binding:"omitempty,max=255"`
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}
