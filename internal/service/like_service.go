package service

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
)

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
	tweetRepo *repository.TweetRepository,
) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo, commentRepo: commentRepo, tweetRepo: tweetRepo}
}

// Toggle 切换对视频、评论或动态的点赞
func (s *LikeService) Toggle(ctx context.Context, userID int64, target model.LikeTarget, targetID int64) (*dto.LikeToggleData, error) {
	if !target.Valid() {
		return nil, ErrInvalidLikeTarget
	}
	if err := s.ensureTarget(ctx, userID, target, targetID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, target, targetID)
	if err != nil {
		return nil, persistErr("Failed to toggle like", err)
	}
	count, err := s.likeRepo.Count(ctx, target, targetID)
	if err != nil {
		return nil, persistErr("Failed to count likes", err)
	}

	return &dto.LikeToggleData{
		TargetType: target,
		TargetID:   targetID,
		IsLiked:    liked,
		LikesCount: count,
	}, nil
}

func (s *LikeService) ensureTarget(ctx context.Context, userID int64, target model.LikeTarget, targetID int64) error {
	var err error
	switch target {
	case model.LikeTargetVideo:
		_, err = visibleVideo(ctx, s.videoRepo, targetID, userID)
		return err
	case model.LikeTargetComment:
		_, err = s.commentRepo.GetByID(ctx, targetID)
		return notFoundOr(err, ErrCommentNotFound, "Failed to load comment")
	case model.LikeTargetTweet:
		_, err = s.tweetRepo.GetByID(ctx, targetID)
		return notFoundOr(err, ErrTweetNotFound, "Failed to load tweet")
	default:
		return ErrInvalidLikeTarget
	}
}

// LikedVideos 用户点赞过的视频
func (s *LikeService) LikedVideos(ctx context.Context, userID int64, p dto.Pagination) (*dto.Page[*dto.VideoInfo], error) {
	videos, total, err := s.likeRepo.ListLikedVideos(ctx, userID, p.Offset(), p.Limit)
	if err != nil {
		return nil, persistErr("Failed to list liked videos", err)
	}
	return dto.NewPage(dto.NewVideoInfos(videos), total, p), nil
}
