package repository

import (
	"context"
	"time"

	"vidtube-go/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func preloadEntries(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

// Create 创建播放列表
func (r *PlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

// GetByID 仅查询播放列表本身
func (r *PlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetDetail 查询播放列表及其视频（按加入顺序）
func (r *PlaylistRepository) GetDetail(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Entries", preloadEntries).
		Preload("Entries.Video.Owner").
		Where("id = ?", id).
		First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ExistsByOwnerName 同一用户下是否已有同名列表，excludeID 用于重命名
func (r *PlaylistRepository) ExistsByOwnerName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("owner_id = ? AND name = ?", ownerID, name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Update 更新播放列表
func (r *PlaylistRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除播放列表及条目
func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByOwner 用户的播放列表（含视频），最新创建在前
func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*model.Playlist, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Playlist{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var playlists []*model.Playlist
	err := query.
		Preload("Owner").
		Preload("Entries", preloadEntries).
		Preload("Entries.Video.Owner").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&playlists).Error
	return playlists, total, err
}

// HasVideo 视频是否已在列表中
func (r *PlaylistRepository) HasVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	return count > 0, err
}

// AddVideo 追加到列表末尾
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&model.PlaylistVideo{}).
			Select("COALESCE(MAX(position), 0)").
			Where("playlist_id = ?", playlistID).
			Scan(&maxPos).Error; err != nil {
			return err
		}
		entry := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, Position: maxPos + 1}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&model.Playlist{}).Where("id = ?", playlistID).
			Update("updated_at", time.Now()).Error
	})
}

// RemoveVideo 从列表移除，返回是否有记录被删除
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	return result.RowsAffected > 0, result.Error
}
