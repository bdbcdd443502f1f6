package service

import (
	"context"
	"strings"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/media"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/pkg/apperr"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/utils"

	"go.uber.org/zap"
)

// TokenRevoker 访问令牌吊销名单，未启用 Redis 时为 nil
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService struct {
	userRepo *repository.UserRepository
	store    media.Store
	tokens   *utils.TokenManager
	revoker  TokenRevoker
}

func NewAuthService(userRepo *repository.UserRepository, store media.Store, tokens *utils.TokenManager, revoker TokenRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, store: store, tokens: tokens, revoker: revoker}
}

// Register 用户注册：校验、查重、上传头像与封面、写入用户
func (s *AuthService) Register(ctx context.Context, in *dto.RegisterInput) (*dto.UserInfo, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || strings.TrimSpace(in.Password) == "" {
		return nil, ErrAllFieldsRequired
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, persistErr("Failed to check existing user", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	if in.AvatarPath == "" {
		return nil, ErrAvatarRequired
	}
	avatar, err := s.store.Upload(ctx, in.AvatarPath, media.KindImage)
	if err != nil {
		return nil, apperr.Upload("Failed to upload avatar", err)
	}
	uploaded := []string{avatar.URL}

	var coverURL string
	if in.CoverImagePath != "" {
		cover, err := s.store.Upload(ctx, in.CoverImagePath, media.KindImage)
		if err != nil {
			s.discard(ctx, uploaded...)
			return nil, apperr.Upload("Failed to upload cover image", err)
		}
		coverURL = cover.URL
		uploaded = append(uploaded, cover.URL)
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		s.discard(ctx, uploaded...)
		return nil, err
	}

	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   hashed,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.discard(ctx, uploaded...)
		if repository.IsDuplicateKey(err) {
			return nil, ErrUserExists
		}
		return nil, persistErr("Something went wrong while registering the user", err)
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return dto.NewUserInfo(user), nil
}

// discard 回滚已上传的资源，失败只记录日志
func (s *AuthService) discard(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if err := s.store.Delete(ctx, url); err != nil {
			logger.Warn("Failed to discard uploaded asset", zap.String("url", url), zap.Error(err))
		}
	}
}

// Login 用户名或邮箱登录，签发令牌并保存刷新令牌
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginData, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, apperr.Validation("Username or email is required")
	}
	if req.Password == "" {
		return nil, apperr.Validation("Password is required")
	}

	user, err := s.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "Failed to load user")
	}
	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginData{User: dto.NewUserInfo(user), TokenPair: *pair}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	access, err := s.tokens.IssueAccess(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, notFoundOr(err, ErrUserNotFound, "Failed to save refresh token")
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout 清除刷新令牌，并吊销当前访问令牌直到其过期
func (s *AuthService) Logout(ctx context.Context, userID int64, claims *utils.AccessClaims) error {
	if err := s.userRepo.SetRefreshToken(ctx, userID, nil); err != nil && !repository.IsNotFound(err) {
		return persistErr("Failed to clear refresh token", err)
	}
	if s.revoker == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Error("Failed to revoke access token", zap.Int64("user_id", userID), zap.Error(err))
	}
	return nil
}

// RefreshTokens 校验刷新令牌并轮换两种令牌
func (s *AuthService) RefreshTokens(ctx context.Context, token string) (*dto.TokenPair, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.tokens.ParseRefresh(token)
	if err != nil {
		return nil, ErrRefreshInvalid.WithCause(err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrRefreshInvalid, "Failed to load user")
	}
	if user.RefreshToken == nil || *user.RefreshToken != token {
		return nil, ErrRefreshReused
	}
	return s.issueTokens(ctx, user)
}

// Authenticate 校验访问令牌并加载用户，供鉴权中间件使用
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, *utils.AccessClaims, error) {
	if token == "" {
		return nil, nil, ErrUnauthorized
	}
	claims, err := s.tokens.ParseAccess(token)
	if err != nil {
		return nil, nil, ErrInvalidToken.WithCause(err)
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.Error("Failed to check token denylist", zap.Error(err))
			return nil, nil, ErrInvalidToken.WithCause(err)
		}
		if revoked {
			return nil, nil, ErrInvalidToken
		}
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, notFoundOr(err, ErrInvalidToken, "Failed to load user")
	}
	return user, claims, nil
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return ErrAllFieldsRequired
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, ErrUserNotFound, "Failed to load user")
	}
	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrInvalidOldPass
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.userRepo.Update(ctx, userID, map[string]interface{}{"password": hashed})
	return notFoundOr(err, ErrUserNotFound, "Failed to update password")
}
