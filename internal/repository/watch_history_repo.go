package repository

import (
	"context"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// Add 记录观看，已存在则忽略
func (r *WatchHistoryRepository) Add(ctx context.Context, userID, videoID int64) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

// List 按首次观看顺序返回视频
func (r *WatchHistoryRepository) List(ctx context.Context, userID int64, offset, limit int) ([]*model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{}).
		Joins("JOIN watch_histories ON watch_histories.video_id = videos.id").
		Where("watch_histories.user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*model.Video
	err := query.Select("videos.*").
		Preload("Owner").
		Order("watch_histories.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&videos).Error
	return videos, total, err
}
