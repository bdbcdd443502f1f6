package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVideoEvent(t *testing.T) {
	raw, err := json.Marshal(VideoEvent{Type: VideoDeleted, VideoID: 42, OccurredAt: time.Now()})
	require.NoError(t, err)

	ev, err := DecodeVideoEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, VideoDeleted, ev.Type)
	assert.Equal(t, int64(42), ev.VideoID)
	assert.Equal(t, []byte("video-42"), ev.key())
}

func TestDecodeVideoEvent_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad json":     `{`,
		"unknown type": `{"type":"rename","videoId":1}`,
		"missing id":   `{"type":"upsert"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeVideoEvent([]byte(raw))
			assert.Error(t, err)
		})
	}
}
