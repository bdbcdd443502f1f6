package kafka

import (
	"context"
	"time"

	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// VideoEventHandler 处理单条视频事件
type VideoEventHandler func(ctx context.Context, ev *VideoEvent) error

// ConsumeVideoEvents 阻塞消费视频事件，ctx 取消后返回
func ConsumeVideoEvents(ctx context.Context, brokers []string, topic, groupID string, handler VideoEventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka video event consumer stopped")
	}()

	logger.Info("Kafka video event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		ev, err := DecodeVideoEvent(msg.Value)
		if err != nil {
			logger.Error("Skipping malformed video event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, ev); err != nil {
			logger.Error("Failed to handle video event",
				zap.Int64("video_id", ev.VideoID),
				zap.String("type", string(ev.Type)),
				zap.Error(err),
			)
		}
	}
}
