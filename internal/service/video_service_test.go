package service

import (
	"context"
	"fmt"
	"testing"

	"vidtube-go/internal/api/dto"
	infraKafka "vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/media"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	Type    infraKafka.VideoEventType
	VideoID int64
}

type recordingPublisher struct {
	events    []recordedEvent
	deadlines []bool
	ctxErrs   []error
}

func (p *recordingPublisher) PublishVideoEvent(ctx context.Context, eventType infraKafka.VideoEventType, videoID int64) error {
	_, hasDeadline := ctx.Deadline()
	p.deadlines = append(p.deadlines, hasDeadline)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	p.events = append(p.events, recordedEvent{Type: eventType, VideoID: videoID})
	return nil
}

func TestVideoServicePublishAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	events := &recordingPublisher{}
	env.videos.events = events

	owner := env.register(t, "alice")
	viewer := env.register(t, "bob")
	video := env.publish(t, owner.ID, "intro")

	assert.True(t, video.IsPublished)
	assert.Equal(t, 42.5, video.Duration)
	assert.Equal(t, "alice", video.Owner.Username)
	assert.Equal(t, []recordedEvent{{Type: infraKafka.VideoUpserted, VideoID: video.ID}}, events.events)
	assert.Equal(t, []bool{true}, events.deadlines)

	detail, err := env.videos.Get(ctx, video.ID, viewer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.Views)
	assert.False(t, detail.IsLiked)

	_, err = env.videos.Get(ctx, video.ID, viewer.ID)
	require.NoError(t, err)

	history, err := env.users.WatchHistory(ctx, viewer.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, history.Total)
	assert.EqualValues(t, 2, history.Items[0].Views)
}

func TestVideoServiceEventPublishDetachedFromRequest(t *testing.T) {
	env := newTestEnv(t)
	events := &recordingPublisher{}
	env.videos.events = events

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env.videos.publish(ctx, infraKafka.VideoDeleted, 7)

	assert.Equal(t, []recordedEvent{{Type: infraKafka.VideoDeleted, VideoID: 7}}, events.events)
	assert.Equal(t, []bool{true}, events.deadlines)
	assert.Equal(t, []error{nil}, events.ctxErrs)
}

func TestVideoServicePublishValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")

	_, err := env.videos.Publish(ctx, owner.ID, &dto.PublishVideoInput{Title: "t", Description: "d", VideoPath: "/tmp/v.mp4"})
	assert.ErrorIs(t, err, ErrVideoFilesRequired)

	_, err = env.videos.Publish(ctx, owner.ID, &dto.PublishVideoInput{Title: " ", Description: "d", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.jpg"})
	assert.ErrorIs(t, err, ErrAllFieldsRequired)
}

func TestVideoServicePublishThumbnailFailureDiscardsVideo(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "alice")
	before := env.store.Count()
	env.store.FailUpload[media.KindImage] = true

	_, err := env.videos.Publish(context.Background(), owner.ID, &dto.PublishVideoInput{
		Title: "t", Description: "d", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.jpg",
	})
	assertKind(t, err, apperr.KindUpload)
	assert.Equal(t, before, env.store.Count())
}

func TestVideoServiceUnpublishedVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	other := env.register(t, "bob")
	video := env.publish(t, owner.ID, "draft")

	toggled, err := env.videos.TogglePublish(ctx, owner.ID, video.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPublished)

	_, err = env.videos.Get(ctx, video.ID, other.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = env.videos.Get(ctx, video.ID, 0)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	_, err = env.videos.Get(ctx, video.ID, owner.ID)
	assert.NoError(t, err)

	page, err := env.videos.List(ctx, other.ID, &dto.VideoListQuery{UserID: &owner.ID, Pagination: dto.NewPagination(1, 10)})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	page, err = env.videos.List(ctx, owner.ID, &dto.VideoListQuery{UserID: &owner.ID, Pagination: dto.NewPagination(1, 10)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestVideoServiceListPagination(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "alice")
	for i := 1; i <= 12; i++ {
		env.publish(t, owner.ID, fmt.Sprintf("video-%02d", i))
	}

	page, err := env.videos.List(context.Background(), 0, &dto.VideoListQuery{
		SortBy:     "title",
		SortType:   "asc",
		Pagination: dto.NewPagination(2, 5),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 12, page.Total)
	assert.EqualValues(t, 3, page.TotalPages)
	require.Len(t, page.Items, 5)
	for i, item := range page.Items {
		assert.Equal(t, fmt.Sprintf("video-%02d", i+6), item.Title)
	}

	_, err = env.videos.List(context.Background(), 0, &dto.VideoListQuery{SortBy: "password", Pagination: dto.NewPagination(1, 10)})
	assertKind(t, err, apperr.KindValidation)
}

func TestVideoServiceOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	intruder := env.register(t, "mallory")
	video := env.publish(t, owner.ID, "mine")

	title := "stolen"
	_, err := env.videos.Update(ctx, intruder.ID, video.ID, &dto.UpdateVideoInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, env.videos.Delete(ctx, intruder.ID, video.ID), ErrForbidden)
	_, err = env.videos.TogglePublish(ctx, intruder.ID, video.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.videos.Update(ctx, owner.ID, video.ID, &dto.UpdateVideoInput{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestVideoServiceUpdateThumbnailReplacesOld(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	video := env.publish(t, owner.ID, "thumb")

	updated, err := env.videos.Update(ctx, owner.ID, video.ID, &dto.UpdateVideoInput{ThumbnailPath: "/tmp/new.jpg"})
	require.NoError(t, err)
	assert.NotEqual(t, video.Thumbnail, updated.Thumbnail)
	assert.True(t, env.store.Has(updated.Thumbnail))
	assert.False(t, env.store.Has(video.Thumbnail))
}

func TestVideoServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "alice")
	video := env.publish(t, owner.ID, "bye")

	env.store.FailDelete = true
	err := env.videos.Delete(ctx, owner.ID, video.ID)
	assertKind(t, err, apperr.KindUpload)
	_, err = env.videos.Get(ctx, video.ID, owner.ID)
	require.NoError(t, err)

	env.store.FailDelete = false
	require.NoError(t, env.videos.Delete(ctx, owner.ID, video.ID))
	assert.False(t, env.store.Has(video.VideoFile))
	assert.False(t, env.store.Has(video.Thumbnail))

	_, err = env.videos.Get(ctx, video.ID, owner.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestLikeServiceToggleTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")
	video := env.publish(t, user.ID, "liked")

	first, err := env.likes.Toggle(ctx, user.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.True(t, first.IsLiked)
	assert.EqualValues(t, 1, first.LikesCount)

	second, err := env.likes.Toggle(ctx, user.ID, model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.False(t, second.IsLiked)
	assert.Zero(t, second.LikesCount)

	_, err = env.likes.Toggle(ctx, user.ID, model.LikeTargetTweet, 999)
	assert.ErrorIs(t, err, ErrTweetNotFound)
	_, err = env.likes.Toggle(ctx, user.ID, model.LikeTarget("playlist"), video.ID)
	assert.ErrorIs(t, err, ErrInvalidLikeTarget)
	_, err = env.likes.Toggle(ctx, user.ID, model.LikeTarget("post"), 0)
	assertKind(t, err, apperr.KindValidation)
}

func TestLikeServiceLikedVideos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice")
	v1 := env.publish(t, user.ID, "one")
	v2 := env.publish(t, user.ID, "two")

	_, err := env.likes.Toggle(ctx, user.ID, model.LikeTargetVideo, v1.ID)
	require.NoError(t, err)
	_, err = env.likes.Toggle(ctx, user.ID, model.LikeTargetVideo, v2.ID)
	require.NoError(t, err)

	page, err := env.likes.LikedVideos(ctx, user.ID, dto.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, v2.ID, page.Items[0].ID)
}
