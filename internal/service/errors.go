package service

import (
	"context"

	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/apperr"
)

var (
	ErrAllFieldsRequired = apperr.Validation("All fields are required")
	ErrUserExists        = apperr.Conflict("User with email or username already exists")
	ErrAvatarRequired    = apperr.Validation("Avatar file is required")
	ErrUserNotFound      = apperr.NotFound("User does not exist")
	ErrInvalidCredential = apperr.Auth("Invalid credentials")
	ErrUnauthorized      = apperr.Auth("Unauthorized request")
	ErrInvalidToken      = apperr.Auth("Invalid access token")
	ErrRefreshInvalid    = apperr.Auth("Invalid refresh token")
	ErrRefreshReused     = apperr.Auth("Refresh token is expired or used")
	ErrInvalidOldPass    = apperr.Auth("Invalid old password")
	ErrEmailTaken        = apperr.Conflict("Email is already in use")
	ErrChannelNotFound   = apperr.NotFound("Channel does not exist")

	ErrVideoNotFound       = apperr.NotFound("Video not found")
	ErrVideoFilesRequired  = apperr.Validation("Video file and thumbnail are required")
	ErrNothingToUpdate     = apperr.Validation("At least one field is required")
	ErrInvalidSortBy       = apperr.Validation("Invalid sortBy")
	ErrInvalidSortType     = apperr.Validation("Invalid sortType")
	ErrCommentNotFound     = apperr.NotFound("Comment not found")
	ErrContentRequired     = apperr.Validation("Content is required")
	ErrTweetNotFound       = apperr.NotFound("Tweet not found")
	ErrInvalidLikeTarget   = apperr.Validation("Invalid like target")
	ErrSelfSubscribe       = apperr.Validation("You cannot subscribe to your own channel")
	ErrPlaylistNotFound    = apperr.NotFound("Playlist not found")
	ErrPlaylistNameMissing = apperr.Validation("Playlist name is required")
	ErrPlaylistExists      = apperr.Conflict("Playlist with this name already exists")
	ErrVideoInPlaylist     = apperr.Validation("Video already exists in playlist")
	ErrVideoNotInPlaylist  = apperr.Validation("Video does not exist in playlist")

	ErrForbidden = apperr.Forbidden("You are not allowed to modify this resource")
)

// ensureOwner 所有权校验，所有写操作共用
func ensureOwner(actorID, ownerID int64) error {
	if actorID != ownerID {
		return ErrForbidden
	}
	return nil
}

// notFoundOr 记录不存在时返回 notFound，其余错误包装为持久化错误
func notFoundOr(err error, notFound *apperr.Error, msg string) error {
	if err == nil {
		return nil
	}
	if repository.IsNotFound(err) {
		return notFound
	}
	return persistErr(msg, err)
}

// persistErr 数据库错误统一包装，已是业务错误的直接返回
func persistErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Persistence(msg, err)
}

// visibleVideo 加载视频，未发布的视频只对作者可见
func visibleVideo(ctx context.Context, repo *repository.VideoRepository, videoID, viewerID int64) (*model.Video, error) {
	video, err := repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound, "Failed to load video")
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}
	return video, nil
}
