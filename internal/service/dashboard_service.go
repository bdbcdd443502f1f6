package service

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
)

type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	videoRepo     *repository.VideoRepository
	likeRepo      *repository.LikeRepository
	commentRepo   *repository.CommentRepository
}

func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
	commentRepo *repository.CommentRepository,
) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, videoRepo: videoRepo, likeRepo: likeRepo, commentRepo: commentRepo}
}

// Stats 频道统计
func (s *DashboardService) Stats(ctx context.Context, ownerID int64) (*dto.ChannelStats, error) {
	stats, err := s.dashboardRepo.ChannelStats(ctx, ownerID)
	if err != nil {
		return nil, persistErr("Failed to load channel stats", err)
	}
	return &dto.ChannelStats{
		ChannelID:        ownerID,
		TotalVideos:      stats.TotalVideos,
		TotalViews:       stats.TotalViews,
		TotalSubscribers: stats.TotalSubscribers,
		TotalLikes:       stats.TotalLikes,
	}, nil
}

// Videos 创作者全部视频（含未公开），附带点赞数与评论数
func (s *DashboardService) Videos(ctx context.Context, ownerID int64, p dto.Pagination) (*dto.Page[*dto.DashboardVideo], error) {
	videos, total, err := s.videoRepo.List(ctx, repository.VideoFilter{
		OwnerID:            &ownerID,
		IncludeUnpublished: true,
		SortColumn:         "created_at",
		Desc:               true,
		Offset:             p.Offset(),
		Limit:              p.Limit,
	})
	if err != nil {
		return nil, persistErr("Failed to list videos", err)
	}

	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	likes, err := s.likeRepo.CountByTargets(ctx, model.LikeTargetVideo, ids)
	if err != nil {
		return nil, persistErr("Failed to count likes", err)
	}
	comments, err := s.commentRepo.CountByVideos(ctx, ids)
	if err != nil {
		return nil, persistErr("Failed to count comments", err)
	}

	items := make([]*dto.DashboardVideo, 0, len(videos))
	for _, v := range videos {
		items = append(items, &dto.DashboardVideo{
			VideoInfo:     dto.NewVideoInfo(v),
			LikesCount:    likes[v.ID],
			CommentsCount: comments[v.ID],
		})
	}
	return dto.NewPage(items, total, p), nil
}
