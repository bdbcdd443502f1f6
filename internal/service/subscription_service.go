package service

import (
	"context"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"
)

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle 订阅或取消订阅频道
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID int64) (*dto.SubscriptionToggleData, error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, notFoundOr(err, ErrChannelNotFound, "Failed to load channel")
	}
	if subscriberID == channelID {
		return nil, ErrSelfSubscribe
	}

	subscribed, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, persistErr("Failed to toggle subscription", err)
	}
	count, err := s.subRepo.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, persistErr("Failed to count subscribers", err)
	}
	return &dto.SubscriptionToggleData{ChannelID: channelID, IsSubscribed: subscribed, SubscribersCount: count}, nil
}

// Subscribers 频道的订阅者
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID int64, p dto.Pagination) (*dto.Page[*dto.OwnerBrief], error) {
	users, total, err := s.subRepo.ListSubscribers(ctx, channelID, p.Offset(), p.Limit)
	if err != nil {
		return nil, persistErr("Failed to list subscribers", err)
	}
	items := make([]*dto.OwnerBrief, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewOwnerBrief(u))
	}
	return dto.NewPage(items, total, p), nil
}

// SubscribedChannels 用户订阅的频道及各自订阅数
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID int64, p dto.Pagination) (*dto.Page[*dto.ChannelBrief], error) {
	channels, total, err := s.subRepo.ListSubscribedChannels(ctx, subscriberID, p.Offset(), p.Limit)
	if err != nil {
		return nil, persistErr("Failed to list subscribed channels", err)
	}

	ids := make([]int64, 0, len(channels))
	for _, c := range channels {
		ids = append(ids, c.ID)
	}
	counts, err := s.subRepo.CountSubscribersBatch(ctx, ids)
	if err != nil {
		return nil, persistErr("Failed to count subscribers", err)
	}

	items := make([]*dto.ChannelBrief, 0, len(channels))
	for _, c := range channels {
		items = append(items, &dto.ChannelBrief{OwnerBrief: dto.NewOwnerBrief(c), SubscribersCount: counts[c.ID]})
	}
	return dto.NewPage(items, total, p), nil
}

