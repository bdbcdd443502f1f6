package repository

import (
	"context"
	"strings"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

// 允许排序的字段：请求参数 -> 列名
var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// VideoSortColumn 将排序参数映射为列名，空值默认 created_at
func VideoSortColumn(sortBy string) (string, bool) {
	if sortBy == "" {
		return "created_at", true
	}
	col, ok := videoSortColumns[sortBy]
	return col, ok
}

// VideoFilter 视频列表查询条件
type VideoFilter struct {
	Query              string
	OwnerID            *int64
	IncludeUnpublished bool
	SortColumn         string
	Desc               bool
	Offset             int
	Limit              int
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create 创建视频
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// GetByID 根据 ID 查询视频（预加载上传者）
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDs 批量查询，按传入顺序返回，缺失的 ID 被跳过
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []int64) ([]*model.Video, error) {
	if len(ids) == 0 {
		return []*model.Video{}, nil
	}
	var videos []*model.Video
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id IN ?", ids).Find(&videos).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]*model.Video, 0, len(videos))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// List 分页查询视频
func (r *VideoRepository) List(ctx context.Context, f VideoFilter) ([]*model.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Video{})

	if !f.IncludeUnpublished {
		query = query.Where("is_published = ?", true)
	}
	if f.OwnerID != nil {
		query = query.Where("owner_id = ?", *f.OwnerID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col := f.SortColumn
	if col == "" {
		col = "created_at"
	}
	dir := " ASC"
	if f.Desc {
		dir = " DESC"
	}

	var videos []*model.Video
	err := query.Preload("Owner").
		Order(col + dir).
		Order("id" + dir).
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&videos).Error
	return videos, total, err
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Update 更新视频字段
func (r *VideoRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// DeleteCascade 删除视频及其点赞、评论（含评论点赞）、播放列表条目和观看历史
func (r *VideoRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_type = ? AND target_id IN (?)", model.LikeTargetComment, commentIDs).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetVideo, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.WatchHistory{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Video{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
