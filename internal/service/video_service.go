package service

import (
	"context"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/media"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/apperr"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// eventPublishTimeout 事件发布的最长等待时间，Broker 不可用时不阻塞请求
const eventPublishTimeout = 3 * time.Second

// VideoEventPublisher 视频变更事件发布，未启用 Kafka 时为 nil
type VideoEventPublisher interface {
	PublishVideoEvent(ctx context.Context, eventType infraKafka.VideoEventType, videoID int64) error
}

// VideoSearcher 全文检索，返回按相关度排序的视频 ID
type VideoSearcher interface {
	Search(ctx context.Context, q string, from, size int) ([]int64, int64, error)
}

type VideoService struct {
	videoRepo   *repository.VideoRepository
	likeRepo    *repository.LikeRepository
	historyRepo *repository.WatchHistoryRepository
	store       media.Store
	events      VideoEventPublisher
	searcher    VideoSearcher
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	likeRepo *repository.LikeRepository,
	historyRepo *repository.WatchHistoryRepository,
	store media.Store,
	events VideoEventPublisher,
	searcher VideoSearcher,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		likeRepo:    likeRepo,
		historyRepo: historyRepo,
		store:       store,
		events:      events,
		searcher:    searcher,
	}
}

// List 视频列表：关键字、作者过滤、排序与分页；作者本人可见未公开视频
func (s *VideoService) List(ctx context.Context, viewerID int64, q *dto.VideoListQuery) (*dto.Page[*dto.VideoInfo], error) {
	col, ok := repository.VideoSortColumn(q.SortBy)
	if !ok {
		return nil, apperr.Validation(ErrInvalidSortBy.Message, "sortBy must be one of createdAt, views, duration, title")
	}
	desc := true
	switch strings.ToLower(q.SortType) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return nil, ErrInvalidSortType
	}

	filter := repository.VideoFilter{
		Query:      q.Query,
		OwnerID:    q.UserID,
		SortColumn: col,
		Desc:       desc,
		Offset:     q.Offset(),
		Limit:      q.Limit,
	}
	if q.UserID != nil && viewerID > 0 && *q.UserID == viewerID {
		filter.IncludeUnpublished = true
	}

	videos, total, err := s.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, persistErr("Failed to list videos", err)
	}
	return dto.NewPage(dto.NewVideoInfos(videos), total, q.Pagination), nil
}

// Search 全文搜索已公开视频，搜索引擎不可用时回退到数据库查询
func (s *VideoService) Search(ctx context.Context, q *dto.VideoSearchQuery) (*dto.Page[*dto.VideoInfo], error) {
	text := strings.TrimSpace(q.Q)
	if s.searcher == nil || text == "" {
		return s.searchFallback(ctx, text, q.Pagination)
	}

	ids, total, err := s.searcher.Search(ctx, text, q.Offset(), q.Limit)
	if err != nil {
		logger.Warn("Search engine unavailable, falling back to database", zap.Error(err))
		return s.searchFallback(ctx, text, q.Pagination)
	}

	videos, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, persistErr("Failed to load videos", err)
	}
	items := make([]*dto.VideoInfo, 0, len(videos))
	for _, v := range videos {
		if v.IsPublished {
			items = append(items, dto.NewVideoInfo(v))
		}
	}
	return dto.NewPage(items, total, q.Pagination), nil
}

func (s *VideoService) searchFallback(ctx context.Context, text string, p dto.Pagination) (*dto.Page[*dto.VideoInfo], error) {
	return s.List(ctx, 0, &dto.VideoListQuery{Query: text, Pagination: p})
}

// Publish 上传视频与缩略图并创建记录
func (s *VideoService) Publish(ctx context.Context, ownerID int64, in *dto.PublishVideoInput) (*dto.VideoInfo, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, ErrAllFieldsRequired
	}
	if in.VideoPath == "" || in.ThumbnailPath == "" {
		return nil, ErrVideoFilesRequired
	}

	videoAsset, err := s.store.Upload(ctx, in.VideoPath, media.KindVideo)
	if err != nil {
		return nil, apperr.Upload("Failed to upload video file", err)
	}
	thumbAsset, err := s.store.Upload(ctx, in.ThumbnailPath, media.KindImage)
	if err != nil {
		s.discard(ctx, videoAsset.URL)
		return nil, apperr.Upload("Failed to upload thumbnail", err)
	}

	video := &model.Video{
		OwnerID:     ownerID,
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Title:       title,
		Description: description,
		Duration:    videoAsset.Duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.discard(ctx, videoAsset.URL, thumbAsset.URL)
		return nil, persistErr("Failed to save video", err)
	}

	logger.Info("Video published",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", ownerID),
		zap.Float64("duration", video.Duration),
	)
	s.publish(ctx, infraKafka.VideoUpserted, video.ID)

	created, err := s.videoRepo.GetByID(ctx, video.ID)
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound, "Failed to load video")
	}
	return dto.NewVideoInfo(created), nil
}

// Get 视频详情：播放量 +1，登录用户记录观看历史
func (s *VideoService) Get(ctx context.Context, id, viewerID int64) (*dto.VideoDetail, error) {
	video, err := visibleVideo(ctx, s.videoRepo, id, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
		return nil, persistErr("Failed to update views", err)
	}
	video.Views++

	detail := &dto.VideoDetail{VideoInfo: dto.NewVideoInfo(video)}
	if detail.LikesCount, err = s.likeRepo.Count(ctx, model.LikeTargetVideo, id); err != nil {
		return nil, persistErr("Failed to count likes", err)
	}

	if viewerID > 0 {
		if err := s.historyRepo.Add(ctx, viewerID, id); err != nil {
			return nil, persistErr("Failed to update watch history", err)
		}
		if detail.IsLiked, err = s.likeRepo.Exists(ctx, viewerID, model.LikeTargetVideo, id); err != nil {
			return nil, persistErr("Failed to check like", err)
		}
	}
	return detail, nil
}

// Update 修改标题、描述或缩略图，仅作者可操作
func (s *VideoService) Update(ctx context.Context, actorID, id int64, in *dto.UpdateVideoInput) (*dto.VideoInfo, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		if title := strings.TrimSpace(*in.Title); title != "" {
			updates["title"] = title
		}
	}
	if in.Description != nil {
		if description := strings.TrimSpace(*in.Description); description != "" {
			updates["description"] = description
		}
	}
	if len(updates) == 0 && in.ThumbnailPath == "" {
		return nil, ErrNothingToUpdate
	}

	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound, "Failed to load video")
	}
	if err := ensureOwner(actorID, video.OwnerID); err != nil {
		return nil, err
	}

	var newThumb string
	if in.ThumbnailPath != "" {
		asset, err := s.store.Upload(ctx, in.ThumbnailPath, media.KindImage)
		if err != nil {
			return nil, apperr.Upload("Failed to upload thumbnail", err)
		}
		newThumb = asset.URL
		updates["thumbnail"] = newThumb
	}

	updated, err := s.videoRepo.Update(ctx, id, updates)
	if err != nil {
		if newThumb != "" {
			s.discard(ctx, newThumb)
		}
		return nil, notFoundOr(err, ErrVideoNotFound, "Failed to update video")
	}
	if newThumb != "" {
		s.discard(ctx, video.Thumbnail)
	}

	s.publish(ctx, infraKafka.VideoUpserted, id)
	return dto.NewVideoInfo(updated), nil
}

// Delete 先删除存储中的缩略图与视频文件，成功后再级联删除数据库记录
func (s *VideoService) Delete(ctx context.Context, actorID, id int64) error {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrVideoNotFound, "Failed to load video")
	}
	if err := ensureOwner(actorID, video.OwnerID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, video.Thumbnail); err != nil {
		return apperr.Upload("Failed to delete thumbnail", err)
	}
	if err := s.store.Delete(ctx, video.VideoFile); err != nil {
		return apperr.Upload("Failed to delete video file", err)
	}

	if err := s.videoRepo.DeleteCascade(ctx, id); err != nil {
		return notFoundOr(err, ErrVideoNotFound, "Failed to delete video")
	}

	logger.Info("Video deleted", zap.Int64("video_id", id), zap.Int64("owner_id", actorID))
	s.publish(ctx, infraKafka.VideoDeleted, id)
	return nil
}

// TogglePublish 切换公开状态
func (s *VideoService) TogglePublish(ctx context.Context, actorID, id int64) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound, "Failed to load video")
	}
	if err := ensureOwner(actorID, video.OwnerID); err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.Update(ctx, id, map[string]interface{}{"is_published": !video.IsPublished})
	if err != nil {
		return nil, notFoundOr(err, ErrVideoNotFound, "Failed to update video")
	}

	s.publish(ctx, infraKafka.VideoUpserted, id)
	return dto.NewVideoInfo(updated), nil
}

func (s *VideoService) publish(ctx context.Context, eventType infraKafka.VideoEventType, videoID int64) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
	defer cancel()
	if err := s.events.PublishVideoEvent(ctx, eventType, videoID); err != nil {
		logger.Warn("Failed to publish video event",
			zap.String("type", string(eventType)),
			zap.Int64("video_id", videoID),
			zap.Error(err),
		)
	}
}

func (s *VideoService) discard(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if err := s.store.Delete(ctx, url); err != nil {
			logger.Warn("Failed to delete asset", zap.String("url", url), zap.Error(err))
		}
	}
}
