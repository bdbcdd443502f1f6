package repository

import (
	"context"
	"fmt"
	"testing"

	"vidtube-go/internal/model"
	"vidtube-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepositoryListPaginationAndVisibility(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "alice")
	for i := 1; i <= 12; i++ {
		testutil.CreateVideo(t, db, owner.ID, fmt.Sprintf("clip-%02d", i), true)
	}
	testutil.CreateVideo(t, db, owner.ID, "hidden", false)

	repo := NewVideoRepository(db)
	videos, total, err := repo.List(ctx, VideoFilter{SortColumn: "title", Offset: 5, Limit: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, videos, 5)
	assert.Equal(t, "clip-06", videos[0].Title)
	assert.Equal(t, "clip-10", videos[4].Title)
	assert.Equal(t, "alice", videos[0].Owner.Username)

	_, total, err = repo.List(ctx, VideoFilter{OwnerID: &owner.ID, IncludeUnpublished: true, Limit: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)
}

func TestVideoRepositoryListQueryIsCaseInsensitive(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.CreateUser(t, db, "bob")
	testutil.CreateVideo(t, db, owner.ID, "Learning Go", true)
	testutil.CreateVideo(t, db, owner.ID, "Cooking", true)

	videos, total, err := NewVideoRepository(db).List(context.Background(), VideoFilter{Query: "GO", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Learning Go", videos[0].Title)
}

func TestVideoSortColumn(t *testing.T) {
	col, ok := VideoSortColumn("")
	assert.True(t, ok)
	assert.Equal(t, "created_at", col)

	col, ok = VideoSortColumn("views")
	assert.True(t, ok)
	assert.Equal(t, "views", col)

	_, ok = VideoSortColumn("password")
	assert.False(t, ok)
}

func TestLikeRepositoryToggle(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "carol")
	video := testutil.CreateVideo(t, db, user.ID, "v", true)
	repo := NewLikeRepository(db)

	liked, err := repo.Toggle(ctx, user.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.Count(ctx, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	liked, err = repo.Toggle(ctx, user.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = repo.Count(ctx, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeRepositoryCountByTargets(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	v1 := testutil.CreateVideo(t, db, a.ID, "v1", true)
	v2 := testutil.CreateVideo(t, db, a.ID, "v2", true)
	repo := NewLikeRepository(db)

	for _, uid := range []int64{a.ID, b.ID} {
		_, err := repo.Toggle(ctx, uid, model.LikeTargetVideo, v1.ID)
		require.NoError(t, err)
	}

	counts, err := repo.CountByTargets(ctx, model.LikeTargetVideo, []int64{v1.ID, v2.ID})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{v1.ID: 2, v2.ID: 0}, counts)

	liked, err := repo.LikedTargets(ctx, b.ID, model.LikeTargetVideo, []int64{v1.ID, v2.ID})
	require.NoError(t, err)
	assert.True(t, liked[v1.ID])
	assert.False(t, liked[v2.ID])
}

func TestVideoRepositoryDeleteCascade(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "dave")
	video := testutil.CreateVideo(t, db, owner.ID, "doomed", true)

	comment := &model.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "hi"}
	require.NoError(t, db.Create(comment).Error)
	likes := NewLikeRepository(db)
	_, err := likes.Toggle(ctx, owner.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, owner.ID, model.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	require.NoError(t, NewWatchHistoryRepository(db).Add(ctx, owner.ID, video.ID))

	playlist := &model.Playlist{OwnerID: owner.ID, Name: "p"}
	playlists := NewPlaylistRepository(db)
	require.NoError(t, playlists.Create(ctx, playlist))
	require.NoError(t, playlists.AddVideo(ctx, playlist.ID, video.ID))

	require.NoError(t, NewVideoRepository(db).DeleteCascade(ctx, video.ID))

	for _, m := range []interface{}{&model.Video{}, &model.Comment{}, &model.Like{}, &model.PlaylistVideo{}, &model.WatchHistory{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T", m)
	}

	err = NewVideoRepository(db).DeleteCascade(ctx, video.ID)
	assert.True(t, IsNotFound(err))
}

func TestSubscriptionRepositoryToggleAndLists(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	channel := testutil.CreateUser(t, db, "channel")
	fan := testutil.CreateUser(t, db, "fan")
	repo := NewSubscriptionRepository(db)

	subscribed, err := repo.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	subs, total, err := repo.ListSubscribers(ctx, channel.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "fan", subs[0].Username)

	channels, _, err := repo.ListSubscribedChannels(ctx, fan.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, channel.ID, channels[0].ID)

	subscribed, err = repo.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	n, err := repo.CountSubscribers(ctx, channel.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlaylistRepositoryEntriesKeepAddOrder(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "erin")
	v1 := testutil.CreateVideo(t, db, owner.ID, "first", true)
	v2 := testutil.CreateVideo(t, db, owner.ID, "second", true)
	repo := NewPlaylistRepository(db)

	playlist := &model.Playlist{OwnerID: owner.ID, Name: "mix"}
	require.NoError(t, repo.Create(ctx, playlist))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v2.ID))
	require.NoError(t, repo.AddVideo(ctx, playlist.ID, v1.ID))

	err := repo.AddVideo(ctx, playlist.ID, v1.ID)
	assert.True(t, IsDuplicateKey(err))

	detail, err := repo.GetDetail(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, detail.Entries, 2)
	assert.Equal(t, "second", detail.Entries[0].Video.Title)
	assert.Equal(t, "first", detail.Entries[1].Video.Title)
	assert.Equal(t, "erin", detail.Entries[0].Video.Owner.Username)

	removed, err := repo.RemoveVideo(ctx, playlist.ID, v2.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repo.RemoveVideo(ctx, playlist.ID, v2.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	dup := &model.Playlist{OwnerID: owner.ID, Name: "mix"}
	assert.True(t, IsDuplicateKey(repo.Create(ctx, dup)))
}

func TestWatchHistoryIsDeduplicatedAndOrdered(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "frank")
	v1 := testutil.CreateVideo(t, db, user.ID, "one", true)
	v2 := testutil.CreateVideo(t, db, user.ID, "two", true)
	repo := NewWatchHistoryRepository(db)

	require.NoError(t, repo.Add(ctx, user.ID, v2.ID))
	require.NoError(t, repo.Add(ctx, user.ID, v1.ID))
	require.NoError(t, repo.Add(ctx, user.ID, v2.ID))

	videos, total, err := repo.List(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"two", "one"}, []string{videos[0].Title, videos[1].Title})
}

func TestDashboardRepositoryChannelStats(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "gina")
	fan := testutil.CreateUser(t, db, "hank")

	empty, err := NewDashboardRepository(db).ChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, ChannelStats{}, *empty)

	video := testutil.CreateVideo(t, db, owner.ID, "stats", true)
	require.NoError(t, db.Model(video).UpdateColumn("views", 7).Error)
	tweet := &model.Tweet{OwnerID: owner.ID, Content: "hello"}
	require.NoError(t, db.Create(tweet).Error)

	likes := NewLikeRepository(db)
	_, err = likes.Toggle(ctx, fan.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, fan.ID, model.LikeTargetTweet, tweet.ID)
	require.NoError(t, err)
	_, err = NewSubscriptionRepository(db).Toggle(ctx, fan.ID, owner.ID)
	require.NoError(t, err)

	stats, err := NewDashboardRepository(db).ChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, ChannelStats{TotalVideos: 1, TotalViews: 7, TotalSubscribers: 1, TotalLikes: 2}, *stats)
}
