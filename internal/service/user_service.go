package service

import (
	"context"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/media"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/apperr"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

var ErrCoverImageRequired = apperr.Validation("Cover image file is required")

type UserService struct {
	userRepo    *repository.UserRepository
	subRepo     *repository.SubscriptionRepository
	historyRepo *repository.WatchHistoryRepository
	store       media.Store
}

func NewUserService(
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	historyRepo *repository.WatchHistoryRepository,
	store media.Store,
) *UserService {
	return &UserService{userRepo: userRepo, subRepo: subRepo, historyRepo: historyRepo, store: store}
}

// UpdateProfile 修改昵称与邮箱
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return nil, ErrAllFieldsRequired
	}

	taken, err := s.userRepo.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return nil, persistErr("Failed to check email", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user, err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, notFoundOr(err, ErrUserNotFound, "Failed to update profile")
	}
	return dto.NewUserInfo(user), nil
}

// UpdateAvatar 上传新头像，保存后删除旧头像
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	if localPath == "" {
		return nil, ErrAvatarRequired
	}
	return s.replaceImage(ctx, userID, localPath, "avatar")
}

// UpdateCoverImage 上传新封面，旧封面可能为空
func (s *UserService) UpdateCoverImage(ctx context.Context, userID int64, localPath string) (*dto.UserInfo, error) {
	if localPath == "" {
		return nil, ErrCoverImageRequired
	}
	return s.replaceImage(ctx, userID, localPath, "cover_image")
}

func (s *UserService) replaceImage(ctx context.Context, userID int64, localPath, column string) (*dto.UserInfo, error) {
	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "Failed to load user")
	}
	oldURL := current.Avatar
	if column == "cover_image" {
		oldURL = current.CoverImage
	}

	asset, err := s.store.Upload(ctx, localPath, media.KindImage)
	if err != nil {
		return nil, apperr.Upload("Error while uploading "+strings.ReplaceAll(column, "_", " "), err)
	}

	user, err := s.userRepo.Update(ctx, userID, map[string]interface{}{column: asset.URL})
	if err != nil {
		if derr := s.store.Delete(ctx, asset.URL); derr != nil {
			logger.Warn("Failed to discard uploaded image", zap.String("url", asset.URL), zap.Error(derr))
		}
		return nil, notFoundOr(err, ErrUserNotFound, "Failed to save image")
	}

	if oldURL != "" {
		if err := s.store.Delete(ctx, oldURL); err != nil {
			logger.Warn("Failed to delete old image",
				zap.Int64("user_id", userID),
				zap.String("url", oldURL),
				zap.Error(err),
			)
		}
	}
	return dto.NewUserInfo(user), nil
}

// ChannelProfile 频道主页：订阅数、订阅他人数、当前用户是否已订阅
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewerID int64) (*dto.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.Validation("Username is missing")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOr(err, ErrChannelNotFound, "Failed to load channel")
	}

	subscribers, err := s.subRepo.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, persistErr("Failed to count subscribers", err)
	}
	subscribedTo, err := s.subRepo.CountSubscribedTo(ctx, user.ID)
	if err != nil {
		return nil, persistErr("Failed to count subscriptions", err)
	}
	var isSubscribed bool
	if viewerID > 0 {
		if isSubscribed, err = s.subRepo.Exists(ctx, viewerID, user.ID); err != nil {
			return nil, persistErr("Failed to check subscription", err)
		}
	}

	return &dto.ChannelProfile{
		ID:                user.ID,
		Username:          user.Username,
		FullName:          user.FullName,
		Email:             user.Email,
		Avatar:            user.Avatar,
		CoverImage:        user.CoverImage,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// WatchHistory 观看历史，按首次观看顺序
func (s *UserService) WatchHistory(ctx context.Context, userID int64, p dto.Pagination) (*dto.Page[*dto.VideoInfo], error) {
	videos, total, err := s.historyRepo.List(ctx, userID, p.Offset(), p.Limit)
	if err != nil {
		return nil, persistErr("Failed to load watch history", err)
	}
	return dto.NewPage(dto.NewVideoInfos(videos), total, p), nil
}
