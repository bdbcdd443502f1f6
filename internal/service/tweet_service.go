package service

import (
	"context"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
	likeRepo  *repository.LikeRepository
}

func NewTweetService(tweetRepo *repository.TweetRepository, userRepo *repository.UserRepository, likeRepo *repository.LikeRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo, likeRepo: likeRepo}
}

// Create 发布动态
func (s *TweetService) Create(ctx context.Context, userID int64, req *dto.ContentRequest) (*dto.TweetInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}
	tweet := &model.Tweet{OwnerID: userID, Content: content}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, persistErr("Failed to create tweet", err)
	}
	created, err := s.tweetRepo.GetByID(ctx, tweet.ID)
	if err != nil {
		return nil, notFoundOr(err, ErrTweetNotFound, "Failed to load tweet")
	}
	return dto.NewTweetInfo(created), nil
}

// ListByUser 用户动态，最新在前；登录用户附带是否已点赞
func (s *TweetService) ListByUser(ctx context.Context, userID, viewerID int64, p dto.Pagination) (*dto.Page[*dto.TweetInfo], error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "Failed to load user")
	}

	tweets, total, err := s.tweetRepo.ListByOwner(ctx, userID, p.Offset(), p.Limit)
	if err != nil {
		return nil, persistErr("Failed to list tweets", err)
	}

	ids := make([]int64, 0, len(tweets))
	for _, t := range tweets {
		ids = append(ids, t.ID)
	}
	counts, err := s.likeRepo.CountByTargets(ctx, model.LikeTargetTweet, ids)
	if err != nil {
		return nil, persistErr("Failed to count likes", err)
	}
	liked := map[int64]bool{}
	if viewerID > 0 {
		if liked, err = s.likeRepo.LikedTargets(ctx, viewerID, model.LikeTargetTweet, ids); err != nil {
			return nil, persistErr("Failed to check likes", err)
		}
	}

	items := make([]*dto.TweetInfo, 0, len(tweets))
	for _, t := range tweets {
		info := dto.NewTweetInfo(t)
		info.LikesCount = counts[t.ID]
		info.IsLiked = liked[t.ID]
		items = append(items, info)
	}
	return dto.NewPage(items, total, p), nil
}

// Update 修改动态
func (s *TweetService) Update(ctx context.Context, userID, tweetID int64, req *dto.ContentRequest) (*dto.TweetInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, notFoundOr(err, ErrTweetNotFound, "Failed to load tweet")
	}
	if err := ensureOwner(userID, tweet.OwnerID); err != nil {
		return nil, err
	}
	updated, err := s.tweetRepo.Update(ctx, tweetID, content)
	if err != nil {
		return nil, notFoundOr(err, ErrTweetNotFound, "Failed to update tweet")
	}
	return dto.NewTweetInfo(updated), nil
}

// Delete 删除动态及其点赞
func (s *TweetService) Delete(ctx context.Context, userID, tweetID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return notFoundOr(err, ErrTweetNotFound, "Failed to load tweet")
	}
	if err := ensureOwner(userID, tweet.OwnerID); err != nil {
		return err
	}
	return notFoundOr(s.tweetRepo.DeleteWithLikes(ctx, tweetID), ErrTweetNotFound, "Failed to delete tweet")
}
