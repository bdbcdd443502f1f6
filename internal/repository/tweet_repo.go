package repository

import (
	"context"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// Create 发布动态
func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

// GetByID 根据 ID 查询动态
func (r *TweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Update 更新动态内容
func (r *TweetRepository) Update(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	result := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteWithLikes 删除动态及其点赞
func (r *TweetRepository) DeleteWithLikes(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetTweet, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Tweet{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByOwner 用户的动态，最新在前
func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*model.Tweet, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []*model.Tweet
	err := query.Preload("Owner").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error
	return tweets, total, err
}
