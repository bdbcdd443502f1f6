package service

import (
	"context"
	"testing"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentServiceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	other := env.register(t, "bob")
	video := env.publish(t, owner.ID, "talk")

	_, err := env.comments.Create(ctx, other.ID, video.ID, &dto.ContentRequest{Content: "  "})
	assert.ErrorIs(t, err, ErrContentRequired)
	_, err = env.comments.Create(ctx, other.ID, 999, &dto.ContentRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrVideoNotFound)

	comment, err := env.comments.Create(ctx, other.ID, video.ID, &dto.ContentRequest{Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.CreatedBy.Username)

	_, err = env.likes.Toggle(ctx, owner.ID, model.LikeTargetComment, comment.ID)
	require.NoError(t, err)

	page, err := env.comments.List(ctx, video.ID, other.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Items[0].LikesCount)
	assert.True(t, page.Items[0].IsMyComment)

	_, err = env.comments.Update(ctx, owner.ID, comment.ID, &dto.ContentRequest{Content: "edited"})
	assert.ErrorIs(t, err, ErrForbidden)
	updated, err := env.comments.Update(ctx, other.ID, comment.ID, &dto.ContentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.ErrorIs(t, env.comments.Delete(ctx, owner.ID, comment.ID), ErrForbidden)
	require.NoError(t, env.comments.Delete(ctx, other.ID, comment.ID))
	assert.ErrorIs(t, env.comments.Delete(ctx, other.ID, comment.ID), ErrCommentNotFound)

	var likes int64
	require.NoError(t, env.db.Model(&model.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)
}

func TestUnpublishedVideoHiddenFromInteractions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	other := env.register(t, "bob")
	video := env.publish(t, owner.ID, "draft")
	_, err := env.videos.TogglePublish(ctx, owner.ID, video.ID)
	require.NoError(t, err)

	_, err = env.likes.Toggle(ctx, other.ID, model.LikeTargetVideo, video.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = env.comments.Create(ctx, other.ID, video.ID, &dto.ContentRequest{Content: "first"})
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = env.comments.List(ctx, video.ID, other.ID, dto.NewPagination(1, 10))
	assertKind(t, err, apperr.KindNotFound)
	_, err = env.comments.List(ctx, video.ID, 0, dto.NewPagination(1, 10))
	assert.ErrorIs(t, err, ErrVideoNotFound)

	playlist, err := env.playlists.Create(ctx, other.ID, &dto.CreatePlaylistRequest{Name: "later"})
	require.NoError(t, err)
	_, err = env.playlists.AddVideo(ctx, other.ID, video.ID, playlist.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	var likes int64
	require.NoError(t, env.db.Model(&model.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)

	liked, err := env.likes.Toggle(ctx, owner.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	_, err = env.comments.Create(ctx, owner.ID, video.ID, &dto.ContentRequest{Content: "note"})
	require.NoError(t, err)
	page, err := env.comments.List(ctx, video.ID, owner.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	own, err := env.playlists.Create(ctx, owner.ID, &dto.CreatePlaylistRequest{Name: "drafts"})
	require.NoError(t, err)
	detail, err := env.playlists.AddVideo(ctx, owner.ID, video.ID, own.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.VideosCount)
}

func TestSubscriptionService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	channel := env.register(t, "alice")
	fan := env.register(t, "bob")

	_, err := env.subscriptions.Toggle(ctx, channel.ID, channel.ID)
	assert.ErrorIs(t, err, ErrSelfSubscribe)
	_, err = env.subscriptions.Toggle(ctx, fan.ID, 999)
	assert.ErrorIs(t, err, ErrChannelNotFound)

	data, err := env.subscriptions.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.True(t, data.IsSubscribed)
	assert.EqualValues(t, 1, data.SubscribersCount)

	profile, err := env.users.ChannelProfile(ctx, "ALICE", fan.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)
	assert.EqualValues(t, 1, profile.SubscribersCount)

	channels, err := env.subscriptions.SubscribedChannels(ctx, fan.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, channels.Items, 1)
	assert.Equal(t, "alice", channels.Items[0].Username)
	assert.EqualValues(t, 1, channels.Items[0].SubscribersCount)

	data, err = env.subscriptions.Toggle(ctx, fan.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, data.IsSubscribed)
	assert.Zero(t, data.SubscribersCount)

	_, err = env.users.ChannelProfile(ctx, "ghost", fan.ID)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestPlaylistService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	other := env.register(t, "bob")
	v1 := env.publish(t, owner.ID, "one")
	v2 := env.publish(t, owner.ID, "two")

	playlist, err := env.playlists.Create(ctx, owner.ID, &dto.CreatePlaylistRequest{Name: "favs"})
	require.NoError(t, err)
	_, err = env.playlists.Create(ctx, owner.ID, &dto.CreatePlaylistRequest{Name: " favs "})
	assert.ErrorIs(t, err, ErrPlaylistExists)
	_, err = env.playlists.Create(ctx, owner.ID, &dto.CreatePlaylistRequest{})
	assert.ErrorIs(t, err, ErrPlaylistNameMissing)

	_, err = env.playlists.AddVideo(ctx, owner.ID, v2.ID, playlist.ID)
	require.NoError(t, err)
	detail, err := env.playlists.AddVideo(ctx, owner.ID, v1.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.VideosCount)
	assert.Equal(t, v2.ID, detail.Videos[0].ID)
	assert.Equal(t, v1.ID, detail.Videos[1].ID)

	_, err = env.playlists.AddVideo(ctx, owner.ID, v1.ID, playlist.ID)
	assert.ErrorIs(t, err, ErrVideoInPlaylist)
	_, err = env.playlists.AddVideo(ctx, other.ID, v1.ID, playlist.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.playlists.AddVideo(ctx, owner.ID, 999, playlist.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = env.playlists.RemoveVideo(ctx, owner.ID, v1.ID, playlist.ID)
	require.NoError(t, err)
	_, err = env.playlists.RemoveVideo(ctx, owner.ID, v1.ID, playlist.ID)
	assert.ErrorIs(t, err, ErrVideoNotInPlaylist)

	_, err = env.playlists.Create(ctx, owner.ID, &dto.CreatePlaylistRequest{Name: "later"})
	require.NoError(t, err)
	_, err = env.playlists.Update(ctx, owner.ID, playlist.ID, &dto.UpdatePlaylistRequest{Name: "later"})
	assert.ErrorIs(t, err, ErrPlaylistExists)
	_, err = env.playlists.Update(ctx, owner.ID, playlist.ID, &dto.UpdatePlaylistRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
	renamed, err := env.playlists.Update(ctx, owner.ID, playlist.ID, &dto.UpdatePlaylistRequest{Name: "best"})
	require.NoError(t, err)
	assert.Equal(t, "best", renamed.Name)

	list, err := env.playlists.ListByUser(ctx, owner.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)

	assert.ErrorIs(t, env.playlists.Delete(ctx, other.ID, playlist.ID), ErrForbidden)
	require.NoError(t, env.playlists.Delete(ctx, owner.ID, playlist.ID))
	_, err = env.playlists.Get(ctx, playlist.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestTweetService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.register(t, "alice")
	reader := env.register(t, "bob")

	_, err := env.tweets.Create(ctx, author.ID, &dto.ContentRequest{})
	assert.ErrorIs(t, err, ErrContentRequired)

	tweet, err := env.tweets.Create(ctx, author.ID, &dto.ContentRequest{Content: "hello"})
	require.NoError(t, err)
	_, err = env.likes.Toggle(ctx, reader.ID, model.LikeTargetTweet, tweet.ID)
	require.NoError(t, err)

	page, err := env.tweets.ListByUser(ctx, author.ID, reader.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsLiked)
	assert.EqualValues(t, 1, page.Items[0].LikesCount)

	_, err = env.tweets.ListByUser(ctx, 999, 0, dto.NewPagination(1, 10))
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.tweets.Update(ctx, reader.ID, tweet.ID, &dto.ContentRequest{Content: "mine now"})
	assert.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, env.tweets.Delete(ctx, author.ID, tweet.ID))
	_, err = env.tweets.Update(ctx, author.ID, tweet.ID, &dto.ContentRequest{Content: "gone"})
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestDashboardService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	fan := env.register(t, "bob")

	stats, err := env.dashboard.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, &dto.ChannelStats{ChannelID: owner.ID}, stats)

	video := env.publish(t, owner.ID, "stats")
	hidden := env.publish(t, owner.ID, "hidden")
	_, err = env.videos.TogglePublish(ctx, owner.ID, hidden.ID)
	require.NoError(t, err)
	_, err = env.videos.Get(ctx, video.ID, fan.ID)
	require.NoError(t, err)
	_, err = env.likes.Toggle(ctx, fan.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	_, err = env.comments.Create(ctx, fan.ID, video.ID, &dto.ContentRequest{Content: "wow"})
	require.NoError(t, err)
	_, err = env.subscriptions.Toggle(ctx, fan.ID, owner.ID)
	require.NoError(t, err)

	stats, err = env.dashboard.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalVideos)
	assert.EqualValues(t, 1, stats.TotalViews)
	assert.EqualValues(t, 1, stats.TotalSubscribers)
	assert.EqualValues(t, 1, stats.TotalLikes)

	videos, err := env.dashboard.Videos(ctx, owner.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 2, videos.Total)
	for _, v := range videos.Items {
		if v.ID == video.ID {
			assert.EqualValues(t, 1, v.LikesCount)
			assert.EqualValues(t, 1, v.CommentsCount)
		}
	}
}

func TestUserServiceProfileAndImages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	env.register(t, "bob")

	_, err := env.users.UpdateProfile(ctx, alice.ID, &dto.UpdateProfileRequest{FullName: "A", Email: "BOB@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	_, err = env.users.UpdateProfile(ctx, alice.ID, &dto.UpdateProfileRequest{FullName: "A"})
	assert.ErrorIs(t, err, ErrAllFieldsRequired)

	updated, err := env.users.UpdateProfile(ctx, alice.ID, &dto.UpdateProfileRequest{FullName: "Alice B", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)

	withAvatar, err := env.users.UpdateAvatar(ctx, alice.ID, "/tmp/new.png")
	require.NoError(t, err)
	assert.False(t, env.store.Has(alice.Avatar))
	assert.True(t, env.store.Has(withAvatar.Avatar))

	env.store.FailDelete = true
	withCover, err := env.users.UpdateCoverImage(ctx, alice.ID, "/tmp/cover.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, withCover.CoverImage)

	_, err = env.users.UpdateAvatar(ctx, alice.ID, "")
	assertKind(t, err, apperr.KindValidation)
}
