package model

import "time"

// User 用户模型，同时作为频道（Channel）
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex:uq_users_username;comment:用户名（小写）" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uq_users_email;comment:邮箱" json:"email"`
	FullName     string    `gorm:"size:128;not null;comment:昵称" json:"fullName"`
	Password     string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	Avatar       string    `gorm:"size:500;not null;comment:头像地址" json:"avatar"`
	CoverImage   string    `gorm:"size:500;not null;default:'';comment:频道封面地址" json:"coverImage"`
	RefreshToken *string   `gorm:"type:text;comment:当前有效的刷新令牌" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:创建时间" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
