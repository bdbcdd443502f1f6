package repository

import (
	"context"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle 在事务内切换订阅状态，返回切换后的状态
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	subscribed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&model.Subscription{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
			return err
		}
		subscribed = true
		return nil
	})
	return subscribed, err
}

// CountSubscribers 频道的订阅者数量
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountSubscribedTo 用户订阅的频道数量
func (r *SubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// Exists 是否已订阅
func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// CountSubscribersBatch 批量统计频道订阅者数量
func (r *SubscriptionRepository) CountSubscribersBatch(ctx context.Context, channelIDs []int64) (map[int64]int64, error) {
	if len(channelIDs) == 0 {
		return map[int64]int64{}, nil
	}
	var rows []idCount
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Select("channel_id AS id, COUNT(*) AS n").
		Where("channel_id IN ?", channelIDs).
		Group("channel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows, channelIDs), nil
}

// ListSubscribers 频道的订阅者，最新订阅在前
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID int64, offset, limit int) ([]*model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID)
	return listUsers(query, offset, limit)
}

// ListSubscribedChannels 用户订阅的频道，最新订阅在前
func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID int64, offset, limit int) ([]*model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)
	return listUsers(query, offset, limit)
}

func listUsers(query *gorm.DB, offset, limit int) ([]*model.User, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []*model.User
	err := query.Select("users.*").
		Order("subscriptions.created_at DESC").
		Order("subscriptions.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}
