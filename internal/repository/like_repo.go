package repository

import (
	"context"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle 在事务内切换点赞状态，返回切换后的状态
func (r *LikeRepository) Toggle(ctx context.Context, userID int64, target model.LikeTarget, targetID int64) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("liked_by = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
			Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		like := &model.Like{LikedBy: userID, TargetType: target, TargetID: targetID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// Count 统计目标的点赞数
func (r *LikeRepository) Count(ctx context.Context, target model.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Count(&count).Error
	return count, err
}

// Exists 用户是否已点赞目标
func (r *LikeRepository) Exists(ctx context.Context, userID int64, target model.LikeTarget, targetID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("liked_by = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
		Count(&count).Error
	return count > 0, err
}

// CountByTargets 批量统计点赞数
func (r *LikeRepository) CountByTargets(ctx context.Context, target model.LikeTarget, targetIDs []int64) (map[int64]int64, error) {
	if len(targetIDs) == 0 {
		return map[int64]int64{}, nil
	}
	var rows []idCount
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Select("target_id AS id, COUNT(*) AS n").
		Where("target_type = ? AND target_id IN ?", target, targetIDs).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows, targetIDs), nil
}

// LikedTargets 返回用户在给定目标中已点赞的集合
func (r *LikeRepository) LikedTargets(ctx context.Context, userID int64, target model.LikeTarget, targetIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return out, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("liked_by = ? AND target_type = ? AND target_id IN ?", userID, target, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ListLikedVideos 用户点赞过的视频，最近点赞在前；他人未公开的视频不返回
func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID int64, offset, limit int) ([]*model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{}).
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_type = ?", model.LikeTargetVideo).
		Where("likes.liked_by = ?", userID).
		Where("(videos.is_published = ? OR videos.owner_id = ?)", true, userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*model.Video
	err := query.Select("videos.*").
		Preload("Owner").
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&videos).Error
	return videos, total, err
}
