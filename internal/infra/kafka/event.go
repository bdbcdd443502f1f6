package kafka

import (
	"encoding/json"
	"fmt"
	"time"
)

// VideoEventsTopic 视频事件 topic 的逻辑名，实际名称见 kafka.topics
const VideoEventsTopic = "video_events"

// VideoEventType 视频事件类型
type VideoEventType string

const (
	VideoUpserted VideoEventType = "upsert"
	VideoDeleted  VideoEventType = "delete"
)

// VideoEvent 视频变更事件，搜索索引 worker 消费
type VideoEvent struct {
	Type       VideoEventType `json:"type"`
	VideoID    int64          `json:"videoId"`
	OccurredAt time.Time      `json:"occurredAt"`
}

func (e VideoEvent) key() []byte {
	return []byte(fmt.Sprintf("video-%d", e.VideoID))
}

// DecodeVideoEvent 解析消息体
func DecodeVideoEvent(raw []byte) (*VideoEvent, error) {
	var ev VideoEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode video event: %w", err)
	}
	switch ev.Type {
	case VideoUpserted, VideoDeleted:
	default:
		return nil, fmt.Errorf("unknown video event type %q", ev.Type)
	}
	if ev.VideoID <= 0 {
		return nil, fmt.Errorf("video event without video id")
	}
	return &ev, nil
}
