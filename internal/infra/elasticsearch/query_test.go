package elasticsearch

import (
	"encoding/json"
	"testing"
	"time"

	"vidtube-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVideoQuery_WithText(t *testing.T) {
	raw, err := json.Marshal(buildVideoQuery("  cats  ", 10, 5))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.EqualValues(t, 10, got["from"])
	assert.EqualValues(t, 5, got["size"])

	boolQ := got["query"].(map[string]any)["bool"].(map[string]any)
	filter := boolQ["filter"].([]any)
	require.Len(t, filter, 1)
	assert.Equal(t, map[string]any{"term": map[string]any{"isPublished": true}}, filter[0])

	must := boolQ["must"].([]any)
	require.Len(t, must, 1)
	mm := must[0].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "cats", mm["query"])

	sort := got["sort"].([]any)
	assert.Contains(t, sort[0].(map[string]any), "_score")
}

func TestBuildVideoQuery_EmptyTextSortsByRecency(t *testing.T) {
	req := buildVideoQuery("   ", 0, 10)
	assert.Empty(t, req.Query.Bool.Must)
	require.Len(t, req.Sort, 1)
	assert.Contains(t, req.Sort[0], "createdAt")
}

func TestNewVideoDoc(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	v := &model.Video{ID: 7, OwnerID: 3, Title: "t", Description: "d", IsPublished: true, Views: 9, Duration: 1.5, CreatedAt: created}
	v.Owner.Username = "alice"

	doc := NewVideoDoc(v)
	assert.Equal(t, "alice", doc.OwnerUsername)
	assert.Equal(t, "2024-01-02T03:04:05Z", doc.CreatedAt)
	assert.True(t, doc.IsPublished)
}
