package router

import (
	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/config"
	"vidtube-go/internal/media"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Playlist     *handler.PlaylistHandler
	Tweet        *handler.TweetHandler
	Dashboard    *handler.DashboardHandler
}

// New 创建 Gin 引擎并注册全局中间件与业务路由
func New(cfg *config.Config, h *Handlers, auth middleware.Authenticator, limiter *middleware.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))
	r.Use(middleware.BodyLimit(cfg.App.BodyLimitBytes()))

	r.GET("/healthz", h.System.Health)
	r.GET("/", h.System.Root)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.App.StaticDir != "" {
		r.Static("/public", cfg.App.StaticDir)
	}

	Setup(r.Group("/api"), h, auth, limiter, uploadFactory(&cfg.App))

	r.NoRoute(handler.NotFound)
	return r
}

type uploadFunc func(fields ...middleware.UploadField) gin.HandlerFunc

func uploadFactory(app *config.AppConfig) uploadFunc {
	return func(fields ...middleware.UploadField) gin.HandlerFunc {
		return middleware.Upload(app.UploadDir, app.MaxUploadBytes(), fields...)
	}
}

var (
	avatarField     = middleware.UploadField{Name: "avatar", Kind: media.KindImage}
	coverImageField = middleware.UploadField{Name: "coverImage", Kind: media.KindImage}
	videoFileField  = middleware.UploadField{Name: "videoFile", Kind: media.KindVideo}
	thumbnailField  = middleware.UploadField{Name: "thumbnail", Kind: media.KindImage}
)

// Setup 注册 /api 下的业务路由
func Setup(api *gin.RouterGroup, h *Handlers, auth middleware.Authenticator, limiter *middleware.IPRateLimiter, upload uploadFunc) {
	authRequired := middleware.AuthRequired(auth)
	optionalAuth := middleware.OptionalAuth(auth)
	rateLimit := middleware.RateLimit(limiter)

	// --- 用户模块 ---
	user := api.Group("/user")
	{
		user.POST("/register", rateLimit, upload(avatarField, coverImageField), h.Auth.Register)
		user.POST("/login", rateLimit, h.Auth.Login)
		user.POST("/refresh-tokens", rateLimit, h.Auth.RefreshTokens)

		userAuth := user.Group("", authRequired)
		{
			userAuth.POST("/logout", h.Auth.Logout)
			userAuth.POST("/change-password", h.Auth.ChangePassword)
			userAuth.GET("/current-user", h.Auth.CurrentUser)
			userAuth.PATCH("/update-profile", h.User.UpdateProfile)
			userAuth.PATCH("/update-avatar", upload(avatarField), h.User.UpdateAvatar)
			userAuth.PATCH("/update-coverImage", upload(coverImageField), h.User.UpdateCoverImage)
			userAuth.GET("/c/:username", h.User.ChannelProfile)
			userAuth.GET("/watch-history", h.User.WatchHistory)
		}
	}

	// --- 视频模块 ---
	video := api.Group("/video")
	{
		video.GET("", optionalAuth, h.Video.List)
		video.GET("/search", optionalAuth, h.Video.Search)
		video.GET("/:videoId", optionalAuth, h.Video.Get)

		videoAuth := video.Group("", authRequired)
		{
			videoAuth.POST("", upload(videoFileField, thumbnailField), h.Video.Publish)
			videoAuth.PATCH("/:videoId", upload(thumbnailField), h.Video.Update)
			videoAuth.DELETE("/:videoId", h.Video.Delete)
			videoAuth.PATCH("/toggle/publish/:videoId", h.Video.TogglePublish)
		}
	}

	// --- 评论模块 ---
	comments := api.Group("/comments")
	{
		comments.GET("/:videoId", optionalAuth, h.Comment.ListByVideo)
		comments.POST("/:videoId", authRequired, h.Comment.Create)
		comments.PATCH("/c/:commentId", authRequired, h.Comment.Update)
		comments.DELETE("/c/:commentId", authRequired, h.Comment.Delete)
	}

	// --- 点赞模块 ---
	like := api.Group("/like", authRequired)
	{
		like.POST("/toggle/video/:videoId", h.Like.ToggleVideo)
		like.POST("/toggle/comment/:commentId", h.Like.ToggleComment)
		like.POST("/toggle/tweet/:tweetId", h.Like.ToggleTweet)
		like.GET("/videos", h.Like.LikedVideos)
	}

	// --- 订阅模块 ---
	subscription := api.Group("/subscription", authRequired)
	{
		subscription.POST("/c/:channelId", h.Subscription.Toggle)
		subscription.GET("/c/:channelId", h.Subscription.Subscribers)
		subscription.GET("/u/:subscriberId", h.Subscription.SubscribedChannels)
	}

	// --- 播放列表 ---
	playlist := api.Group("/playlist")
	{
		playlist.GET("/:playlistId", h.Playlist.Get)
		playlist.GET("/user/:userId", h.Playlist.ListByUser)

		playlistAuth := playlist.Group("", authRequired)
		{
			playlistAuth.POST("", h.Playlist.Create)
			playlistAuth.PATCH("/:playlistId", h.Playlist.Update)
			playlistAuth.DELETE("/:playlistId", h.Playlist.Delete)
			playlistAuth.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
			playlistAuth.PATCH("/remove/:videoId/:playlistId", h.Playlist.RemoveVideo)
		}
	}

	// --- 动态 ---
	tweets := api.Group("/tweets")
	{
		tweets.GET("/user/:userId", optionalAuth, h.Tweet.ListByUser)
		tweets.POST("", authRequired, h.Tweet.Create)
		tweets.PATCH("/:tweetId", authRequired, h.Tweet.Update)
		tweets.DELETE("/:tweetId", authRequired, h.Tweet.Delete)
	}

	// --- 控制台 ---
	dashboard := api.Group("/dashboard", authRequired)
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/videos", h.Dashboard.Videos)
	}
}
