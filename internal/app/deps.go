package app

import (
	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/config"
	"vidtube-go/internal/media"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/service"
	"vidtube-go/pkg/utils"

	"gorm.io/gorm"
)

// Infra 外部依赖，可选组件未启用时对应字段为 nil
type Infra struct {
	DB       *gorm.DB
	Store    media.Store
	Tokens   *utils.TokenManager
	Revoker  service.TokenRevoker
	Events   service.VideoEventPublisher
	Searcher service.VideoSearcher
}

// Services 业务服务集合
type Services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Video        *service.VideoService
	Comment      *service.CommentService
	Like         *service.LikeService
	Subscription *service.SubscriptionService
	Playlist     *service.PlaylistService
	Tweet        *service.TweetService
	Dashboard    *service.DashboardService
}

// NewServices 组装 Repository -> Service
func NewServices(infra *Infra) *Services {
	db := infra.DB
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	return &Services{
		Auth:         service.NewAuthService(userRepo, infra.Store, infra.Tokens, infra.Revoker),
		User:         service.NewUserService(userRepo, subRepo, historyRepo, infra.Store),
		Video:        service.NewVideoService(videoRepo, likeRepo, historyRepo, infra.Store, infra.Events, infra.Searcher),
		Comment:      service.NewCommentService(commentRepo, videoRepo, likeRepo),
		Like:         service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo),
		Subscription: service.NewSubscriptionService(subRepo, userRepo),
		Playlist:     service.NewPlaylistService(playlistRepo, videoRepo, userRepo),
		Tweet:        service.NewTweetService(tweetRepo, userRepo, likeRepo),
		Dashboard:    service.NewDashboardService(dashboardRepo, videoRepo, likeRepo, commentRepo),
	}
}

// NewHandlers 组装 Service -> Handler
func NewHandlers(cfg *config.Config, s *Services) *router.Handlers {
	return &router.Handlers{
		System:       handler.NewSystemHandler(cfg.App.Name, cfg.App.Version),
		Auth:         handler.NewAuthHandler(s.Auth, handler.NewCookieOptions(&cfg.Auth)),
		User:         handler.NewUserHandler(s.User),
		Video:        handler.NewVideoHandler(s.Video),
		Comment:      handler.NewCommentHandler(s.Comment),
		Like:         handler.NewLikeHandler(s.Like),
		Subscription: handler.NewSubscriptionHandler(s.Subscription),
		Playlist:     handler.NewPlaylistHandler(s.Playlist),
		Tweet:        handler.NewTweetHandler(s.Tweet),
		Dashboard:    handler.NewDashboardHandler(s.Dashboard),
	}
}

// NewTokenManager 按配置创建令牌签发器
func NewTokenManager(cfg *config.AuthConfig, issuer string) *utils.TokenManager {
	return utils.NewTokenManager(utils.TokenConfig{
		Issuer:        issuer,
		AccessSecret:  cfg.AccessTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL(),
		RefreshSecret: cfg.RefreshTokenSecret,
		RefreshTTL:    cfg.RefreshTokenTTL(),
	})
}
