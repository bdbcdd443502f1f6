package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer 视频事件生产者
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           3 * time.Second,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", brokers),
		zap.String("topic", topic),
	)

	return &Producer{writer: w, topic: topic}
}

// PublishVideoEvent 发送视频事件，同一视频的事件落在同一分区
func (p *Producer) PublishVideoEvent(ctx context.Context, eventType VideoEventType, videoID int64) error {
	ev := VideoEvent{Type: eventType, VideoID: videoID, OccurredAt: time.Now().UTC()}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: ev.key(), Value: payload}); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}

	logger.Debug("Video event sent",
		zap.String("type", string(eventType)),
		zap.Int64("video_id", videoID),
		zap.String("topic", p.topic),
	)
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
