package service

import (
	"context"
	"testing"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/media"
	"vidtube-go/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRegister(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(context.Background(), &dto.RegisterInput{
		Username:       "  Alice ",
		Email:          "ALICE@Example.com",
		FullName:       " Alice A ",
		Password:       "secret123",
		AvatarPath:     "/tmp/a.png",
		CoverImagePath: "/tmp/c.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice A", user.FullName)
	assert.True(t, env.store.Has(user.Avatar))
	assert.True(t, env.store.Has(user.CoverImage))
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterInput{Username: "bob", Email: " ", FullName: "Bob", Password: "pw", AvatarPath: "/tmp/a.png"})
	assert.ErrorIs(t, err, ErrAllFieldsRequired)

	_, err = env.auth.Register(ctx, &dto.RegisterInput{Username: "bob", Email: "bob@example.com", FullName: "Bob", Password: "pw"})
	assert.ErrorIs(t, err, ErrAvatarRequired)
	assert.Zero(t, env.store.Count())
}

func TestAuthServiceRegisterConflictChecksBeforeUpload(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "carol")
	before := env.store.Count()

	_, err := env.auth.Register(context.Background(), &dto.RegisterInput{
		Username: "CAROL", Email: "other@example.com", FullName: "C", Password: "pw", AvatarPath: "/tmp/x.png",
	})
	assert.ErrorIs(t, err, ErrUserExists)
	assertKind(t, err, apperr.KindConflict)
	assert.Equal(t, before, env.store.Count())
}

func TestAuthServiceRegisterCoverFailureDiscardsAvatar(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailPaths["/tmp/cover.jpg"] = true

	_, err := env.auth.Register(context.Background(), &dto.RegisterInput{
		Username:       "dan",
		Email:          "dan@example.com",
		FullName:       "Dan",
		Password:       "pw",
		AvatarPath:     "/tmp/a.png",
		CoverImagePath: "/tmp/cover.jpg",
	})
	assertKind(t, err, apperr.KindUpload)
	assert.Zero(t, env.store.Count())
	assert.Len(t, env.store.Deleted, 1)
}

func TestAuthServiceRegisterAvatarUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailUpload[media.KindImage] = true

	_, err := env.auth.Register(context.Background(), &dto.RegisterInput{
		Username: "eve", Email: "eve@example.com", FullName: "Eve", Password: "pw", AvatarPath: "/tmp/a.png",
	})
	assertKind(t, err, apperr.KindUpload)
}

func TestAuthServiceLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "frank")

	data, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "FRANK@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "frank", data.User.Username)
	assert.NotEmpty(t, data.AccessToken)
	assert.NotEmpty(t, data.RefreshToken)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "frank", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Password: "secret123"})
	assertKind(t, err, apperr.KindValidation)
}

func TestAuthServiceLoginWithPaddedPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	padded := "  pass phrase "

	_, err := env.auth.Register(ctx, &dto.RegisterInput{
		Username: "gina", Email: "gina@example.com", FullName: "Gina", Password: padded, AvatarPath: "/tmp/g.png",
	})
	require.NoError(t, err)

	data, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "gina", Password: padded})
	require.NoError(t, err)
	assert.NotEmpty(t, data.AccessToken)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "gina", Password: "pass phrase"})
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = env.auth.Register(ctx, &dto.RegisterInput{
		Username: "hank", Email: "hank@example.com", FullName: "Hank", Password: "   ", AvatarPath: "/tmp/h.png",
	})
	assert.ErrorIs(t, err, ErrAllFieldsRequired)
}

func TestAuthServiceRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "gina")

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "gina", Password: "secret123"})
	require.NoError(t, err)

	pair, err := env.auth.RefreshTokens(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	_, err = env.auth.RefreshTokens(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshReused)

	_, err = env.auth.RefreshTokens(ctx, "garbage")
	assertKind(t, err, apperr.KindAuth)

	_, err = env.auth.RefreshTokens(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthServiceLogoutRevokesAccessToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "hank")

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "hank", Password: "secret123"})
	require.NoError(t, err)

	user, claims, err := env.auth.Authenticate(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "hank", user.Username)

	require.NoError(t, env.auth.Logout(ctx, user.ID, claims))

	_, _, err = env.auth.Authenticate(ctx, login.AccessToken)
	assertKind(t, err, apperr.KindAuth)

	_, err = env.auth.RefreshTokens(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshReused)
}

func TestAuthServiceChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "ivy")

	err := env.auth.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{OldPassword: "nope", NewPassword: "next"})
	assert.ErrorIs(t, err, ErrInvalidOldPass)

	require.NoError(t, env.auth.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "next-secret"}))

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "ivy", Password: "next-secret"})
	assert.NoError(t, err)
}
