package service

import (
	"context"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
	likeRepo    *repository.LikeRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository, likeRepo *repository.LikeRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, likeRepo: likeRepo}
}

// List 视频评论列表，最新在前，附带点赞数与是否本人评论
func (s *CommentService) List(ctx context.Context, videoID, viewerID int64, p dto.Pagination) (*dto.Page[*dto.CommentInfo], error) {
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, viewerID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, p.Offset(), p.Limit)
	if err != nil {
		return nil, persistErr("Failed to list comments", err)
	}

	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	counts, err := s.likeRepo.CountByTargets(ctx, model.LikeTargetComment, ids)
	if err != nil {
		return nil, persistErr("Failed to count likes", err)
	}

	items := make([]*dto.CommentInfo, 0, len(comments))
	for _, c := range comments {
		info := dto.NewCommentInfo(c)
		info.LikesCount = counts[c.ID]
		info.IsMyComment = viewerID > 0 && c.OwnerID == viewerID
		items = append(items, info)
	}
	return dto.NewPage(items, total, p), nil
}

// Create 发表评论
func (s *CommentService) Create(ctx context.Context, userID, videoID int64, req *dto.ContentRequest) (*dto.CommentInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{VideoID: videoID, OwnerID: userID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, persistErr("Failed to add comment", err)
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, notFoundOr(err, ErrCommentNotFound, "Failed to load comment")
	}
	info := dto.NewCommentInfo(created)
	info.IsMyComment = true
	return info, nil
}

// Update 修改评论，仅作者可操作
func (s *CommentService) Update(ctx context.Context, userID, commentID int64, req *dto.ContentRequest) (*dto.CommentInfo, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrContentRequired
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(err, ErrCommentNotFound, "Failed to load comment")
	}
	if err := ensureOwner(userID, comment.OwnerID); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.Update(ctx, commentID, content)
	if err != nil {
		return nil, notFoundOr(err, ErrCommentNotFound, "Failed to update comment")
	}
	info := dto.NewCommentInfo(updated)
	info.IsMyComment = true
	return info, nil
}

// Delete 删除评论及其点赞
func (s *CommentService) Delete(ctx context.Context, userID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return notFoundOr(err, ErrCommentNotFound, "Failed to load comment")
	}
	if err := ensureOwner(userID, comment.OwnerID); err != nil {
		return err
	}
	return notFoundOr(s.commentRepo.DeleteWithLikes(ctx, commentID), ErrCommentNotFound, "Failed to delete comment")
}
