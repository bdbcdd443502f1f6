package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// VideosIndex 视频索引的逻辑名，实际名称见 elasticsearch.index
const VideosIndex = "videos"

const videosMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"ownerId": {"type": "long"},
			"ownerUsername": {"type": "keyword"},
			"title": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text"},
			"isPublished": {"type": "boolean"},
			"views": {"type": "long"},
			"duration": {"type": "float"},
			"createdAt": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// VideoDoc 索引中的视频文档
type VideoDoc struct {
	ID            int64   `json:"id"`
	OwnerID       int64   `json:"ownerId"`
	OwnerUsername string  `json:"ownerUsername"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	IsPublished   bool    `json:"isPublished"`
	Views         int64   `json:"views"`
	Duration      float64 `json:"duration"`
	CreatedAt     string  `json:"createdAt"`
}

// NewVideoDoc 由模型构造文档，v.Owner 需已预加载
func NewVideoDoc(v *model.Video) *VideoDoc {
	return &VideoDoc{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		OwnerUsername: v.Owner.Username,
		Title:         v.Title,
		Description:   v.Description,
		IsPublished:   v.IsPublished,
		Views:         v.Views,
		Duration:      v.Duration,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// VideoIndex 视频索引读写
type VideoIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewVideoIndex(client *elasticsearch.Client, index string) *VideoIndex {
	return &VideoIndex{client: client, index: index}
}

// Ensure 索引不存在时创建
func (x *VideoIndex) Ensure(ctx context.Context) error {
	resp, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch videos index already exists", zap.String("index", x.index))
		return nil
	}

	resp, err = x.client.Indices.Create(
		x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(videosMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch videos index created", zap.String("index", x.index))
	return nil
}

// Upsert 写入或覆盖文档
func (x *VideoIndex) Upsert(ctx context.Context, doc *VideoDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := x.client.Index(
		x.index,
		bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(strconv.FormatInt(doc.ID, 10)),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Video indexed", zap.Int64("video_id", doc.ID))
	return nil
}

// Delete 删除文档，不存在视为成功
func (x *VideoIndex) Delete(ctx context.Context, videoID int64) error {
	resp, err := x.client.Delete(x.index, strconv.FormatInt(videoID, 10), x.client.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// Search 在已公开视频中全文检索，返回按相关度排序的视频 ID 与命中总数
func (x *VideoIndex) Search(ctx context.Context, q string, from, size int) ([]int64, int64, error) {
	body, err := json.Marshal(buildVideoQuery(q, from, size))
	if err != nil {
		return nil, 0, err
	}

	resp, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, 0, fmt.Errorf("search error: %s", resp.String())
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, h := range result.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, result.Hits.Total.Value, nil
}
