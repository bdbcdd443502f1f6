package service

import (
	"context"
	"strings"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
	userRepo     *repository.UserRepository
}

func NewPlaylistService(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository, userRepo *repository.UserRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo, userRepo: userRepo}
}

// Create 创建播放列表，同一用户下名称唯一
func (s *PlaylistService) Create(ctx context.Context, ownerID int64, req *dto.CreatePlaylistRequest) (*dto.PlaylistInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPlaylistNameMissing
	}
	exists, err := s.playlistRepo.ExistsByOwnerName(ctx, ownerID, name, 0)
	if err != nil {
		return nil, persistErr("Failed to check playlist", err)
	}
	if exists {
		return nil, ErrPlaylistExists
	}

	playlist := &model.Playlist{OwnerID: ownerID, Name: name, Description: strings.TrimSpace(req.Description)}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrPlaylistExists
		}
		return nil, persistErr("Failed to create playlist", err)
	}
	return s.Get(ctx, playlist.ID)
}

// Get 播放列表详情
func (s *PlaylistService) Get(ctx context.Context, playlistID int64) (*dto.PlaylistInfo, error) {
	playlist, err := s.playlistRepo.GetDetail(ctx, playlistID)
	if err != nil {
		return nil, notFoundOr(err, ErrPlaylistNotFound, "Failed to load playlist")
	}
	return dto.NewPlaylistInfo(playlist), nil
}

// ListByUser 用户的播放列表
func (s *PlaylistService) ListByUser(ctx context.Context, userID int64, p dto.Pagination) (*dto.Page[*dto.PlaylistInfo], error) {
	playlists, total, err := s.playlistRepo.ListByOwner(ctx, userID, p.Offset(), p.Limit)
	if err != nil {
		return nil, persistErr("Failed to list playlists", err)
	}
	items := make([]*dto.PlaylistInfo, 0, len(playlists))
	for _, pl := range playlists {
		items = append(items, dto.NewPlaylistInfo(pl))
	}
	return dto.NewPage(items, total, p), nil
}

// Update 修改名称或描述
func (s *PlaylistService) Update(ctx context.Context, userID, playlistID int64, req *dto.UpdatePlaylistRequest) (*dto.PlaylistInfo, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" && description == "" {
		return nil, ErrNothingToUpdate
	}

	playlist, err := s.owned(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" && name != playlist.Name {
		exists, err := s.playlistRepo.ExistsByOwnerName(ctx, userID, name, playlistID)
		if err != nil {
			return nil, persistErr("Failed to check playlist", err)
		}
		if exists {
			return nil, ErrPlaylistExists
		}
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}

	if len(updates) > 0 {
		if err := s.playlistRepo.Update(ctx, playlistID, updates); err != nil {
			if repository.IsDuplicateKey(err) {
				return nil, ErrPlaylistExists
			}
			return nil, notFoundOr(err, ErrPlaylistNotFound, "Failed to update playlist")
		}
	}
	return s.Get(ctx, playlistID)
}

// Delete 删除播放列表
func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID int64) error {
	if _, err := s.owned(ctx, userID, playlistID); err != nil {
		return err
	}
	return notFoundOr(s.playlistRepo.Delete(ctx, playlistID), ErrPlaylistNotFound, "Failed to delete playlist")
}

// AddVideo 追加视频到列表末尾
func (s *PlaylistService) AddVideo(ctx context.Context, userID, videoID, playlistID int64) (*dto.PlaylistInfo, error) {
	if _, err := s.owned(ctx, userID, playlistID); err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, userID); err != nil {
		return nil, err
	}

	present, err := s.playlistRepo.HasVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, persistErr("Failed to check playlist", err)
	}
	if present {
		return nil, ErrVideoInPlaylist
	}
	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrVideoInPlaylist
		}
		return nil, persistErr("Failed to add video to playlist", err)
	}
	return s.Get(ctx, playlistID)
}

// RemoveVideo 从列表移除视频
func (s *PlaylistService) RemoveVideo(ctx context.Context, userID, videoID, playlistID int64) (*dto.PlaylistInfo, error) {
	if _, err := s.owned(ctx, userID, playlistID); err != nil {
		return nil, err
	}
	removed, err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, persistErr("Failed to remove video from playlist", err)
	}
	if !removed {
		return nil, ErrVideoNotInPlaylist
	}
	return s.Get(ctx, playlistID)
}

func (s *PlaylistService) owned(ctx context.Context, userID, playlistID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, notFoundOr(err, ErrPlaylistNotFound, "Failed to load playlist")
	}
	if err := ensureOwner(userID, playlist.OwnerID); err != nil {
		return nil, err
	}
	return playlist, nil
}
