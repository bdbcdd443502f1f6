package service

import (
	"context"
	"fmt"

	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// VideoIndexWriter 搜索索引写入端
type VideoIndexWriter interface {
	Upsert(ctx context.Context, doc *infraES.VideoDoc) error
	Delete(ctx context.Context, videoID int64) error
}

// SearchIndexer 消费视频事件，同步搜索索引
type SearchIndexer struct {
	videoRepo *repository.VideoRepository
	index     VideoIndexWriter
}

func NewSearchIndexer(videoRepo *repository.VideoRepository, index VideoIndexWriter) *SearchIndexer {
	return &SearchIndexer{videoRepo: videoRepo, index: index}
}

// HandleVideoEvent 公开视频写入索引；未公开或已删除的视频从索引移除
func (s *SearchIndexer) HandleVideoEvent(ctx context.Context, ev *infraKafka.VideoEvent) error {
	if ev.Type == infraKafka.VideoDeleted {
		return s.remove(ctx, ev.VideoID)
	}

	video, err := s.videoRepo.GetByID(ctx, ev.VideoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return s.remove(ctx, ev.VideoID)
		}
		return fmt.Errorf("load video %d: %w", ev.VideoID, err)
	}
	if !video.IsPublished {
		return s.remove(ctx, ev.VideoID)
	}

	if err := s.index.Upsert(ctx, infraES.NewVideoDoc(video)); err != nil {
		return fmt.Errorf("index video %d: %w", ev.VideoID, err)
	}
	logger.Debug("Video synced to search index", zap.Int64("video_id", ev.VideoID))
	return nil
}

func (s *SearchIndexer) remove(ctx context.Context, videoID int64) error {
	if err := s.index.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("remove video %d from index: %w", videoID, err)
	}
	logger.Debug("Video removed from search index", zap.Int64("video_id", videoID))
	return nil
}
