package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/testutil"
	"vidtube-go/pkg/apperr"
	"vidtube-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryRevoker() *memoryRevoker {
	return &memoryRevoker{revoked: map[string]time.Duration{}}
}

func (r *memoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = ttl
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type testEnv struct {
	db      *gorm.DB
	store   *testutil.FakeStore
	revoker *memoryRevoker

	auth          *AuthService
	users         *UserService
	videos        *VideoService
	comments      *CommentService
	likes         *LikeService
	subscriptions *SubscriptionService
	playlists     *PlaylistService
	tweets        *TweetService
	dashboard     *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenDB(t)
	store := testutil.NewFakeStore()
	revoker := newMemoryRevoker()
	tokens := utils.NewTokenManager(utils.TokenConfig{
		Issuer:        "vidtube-test",
		AccessSecret:  "access-secret",
		AccessTTL:     time.Hour,
		RefreshSecret: "refresh-secret",
		RefreshTTL:    24 * time.Hour,
	})

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)

	return &testEnv{
		db:            db,
		store:         store,
		revoker:       revoker,
		auth:          NewAuthService(userRepo, store, tokens, revoker),
		users:         NewUserService(userRepo, subRepo, historyRepo, store),
		videos:        NewVideoService(videoRepo, likeRepo, historyRepo, store, nil, nil),
		comments:      NewCommentService(commentRepo, videoRepo, likeRepo),
		likes:         NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo),
		subscriptions: NewSubscriptionService(subRepo, userRepo),
		playlists:     NewPlaylistService(playlistRepo, videoRepo, userRepo),
		tweets:        NewTweetService(tweetRepo, userRepo, likeRepo),
		dashboard:     NewDashboardService(repository.NewDashboardRepository(db), videoRepo, likeRepo, commentRepo),
	}
}

func (e *testEnv) register(t *testing.T, username string) *dto.UserInfo {
	t.Helper()
	user, err := e.auth.Register(context.Background(), &dto.RegisterInput{
		Username:   username,
		Email:      username + "@example.com",
		FullName:   "Full " + username,
		Password:   "secret123",
		AvatarPath: "/tmp/" + username + ".png",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) publish(t *testing.T, ownerID int64, title string) *dto.VideoInfo {
	t.Helper()
	video, err := e.videos.Publish(context.Background(), ownerID, &dto.PublishVideoInput{
		Title:         title,
		Description:   "description of " + title,
		VideoPath:     "/tmp/" + title + ".mp4",
		ThumbnailPath: "/tmp/" + title + ".jpg",
	})
	require.NoError(t, err)
	return video
}

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperr.KindOf(err), "unexpected error %v", err)
}
