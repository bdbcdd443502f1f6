package testutil

import (
	"fmt"
	"testing"

	"vidtube-go/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateUser 直接写入一个用户，密码字段为任意占位哈希
func CreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: "x",
		Avatar:   fmt.Sprintf("%s/images/%s.png", fakeBaseURL, username),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateVideo 直接写入一个视频
func CreateVideo(t *testing.T, db *gorm.DB, ownerID int64, title string, published bool) *model.Video {
	t.Helper()
	video := &model.Video{
		OwnerID:     ownerID,
		VideoFile:   fmt.Sprintf("%s/videos/%s.mp4", fakeBaseURL, title),
		Thumbnail:   fmt.Sprintf("%s/images/%s.jpg", fakeBaseURL, title),
		Title:       title,
		Description: "about " + title,
		Duration:    10,
		IsPublished: published,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}
