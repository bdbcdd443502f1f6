package repository

import (
	"context"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

// ChannelStats 频道统计
type ChannelStats struct {
	TotalVideos      int64
	TotalViews       int64
	TotalSubscribers int64
	TotalLikes       int64
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// ChannelStats 汇总视频数、播放量、订阅数以及视频、评论、动态收到的点赞数
func (r *DashboardRepository) ChannelStats(ctx context.Context, ownerID int64) (*ChannelStats, error) {
	db := r.db.WithContext(ctx)
	stats := &ChannelStats{}

	var agg struct {
		Videos int64
		Views  int64
	}
	if err := db.Model(&model.Video{}).
		Select("COUNT(*) AS videos, COALESCE(SUM(views), 0) AS views").
		Where("owner_id = ?", ownerID).
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	stats.TotalVideos = agg.Videos
	stats.TotalViews = agg.Views

	if err := db.Model(&model.Subscription{}).
		Where("channel_id = ?", ownerID).
		Count(&stats.TotalSubscribers).Error; err != nil {
		return nil, err
	}

	videoIDs := db.Model(&model.Video{}).Select("id").Where("owner_id = ?", ownerID)
	commentIDs := db.Model(&model.Comment{}).Select("id").Where("owner_id = ?", ownerID)
	tweetIDs := db.Model(&model.Tweet{}).Select("id").Where("owner_id = ?", ownerID)
	if err := db.Model(&model.Like{}).
		Where("(target_type = ? AND target_id IN (?)) OR (target_type = ? AND target_id IN (?)) OR (target_type = ? AND target_id IN (?))",
			model.LikeTargetVideo, videoIDs,
			model.LikeTargetComment, commentIDs,
			model.LikeTargetTweet, tweetIDs,
		).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
