package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/config"
	"vidtube-go/internal/infra/database"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	infraMinio "vidtube-go/internal/infra/minio"
	infraRedis "vidtube-go/internal/infra/redis"
	infraS3 "vidtube-go/internal/infra/s3"
	"vidtube-go/internal/media"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App API 进程，持有需要在退出时释放的连接
type App struct {
	cfg      *config.Config
	db       *gorm.DB
	redis    *redis.Client
	producer *infraKafka.Producer
	server   *http.Server
}

// New 按启动顺序初始化依赖：数据库 -> Redis -> 媒体存储 -> Kafka -> Elasticsearch -> 路由
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}
	a.db = db

	if err := database.AutoMigrate(db, model.All()...); err != nil {
		a.Close()
		return nil, err
	}

	infra := &Infra{DB: db, Tokens: NewTokenManager(&cfg.Auth, cfg.App.Name)}

	if cfg.Redis.Enabled {
		client, err := infraRedis.New(ctx, &cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		infra.Revoker = infraRedis.NewTokenDenylist(client)
	} else {
		logger.Warn("Redis disabled, logout will not revoke access tokens")
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	infra.Store = store

	if len(cfg.Kafka.Brokers) > 0 {
		a.producer = infraKafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic(infraKafka.VideoEventsTopic))
		infra.Events = a.producer
	} else {
		logger.Warn("Kafka brokers not configured, video events disabled")
	}

	// 搜索可选，失败时降级为数据库查询
	if len(cfg.Elasticsearch.Hosts) > 0 {
		client, err := infraES.New(ctx, &cfg.Elasticsearch)
		if err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			index := infraES.NewVideoIndex(client, cfg.Elasticsearch.IndexName(infraES.VideosIndex))
			if err := index.Ensure(ctx); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			infra.Searcher = index
		}
	}

	if err := os.MkdirAll(cfg.App.UploadDir, 0o755); err != nil {
		a.Close()
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	gin.SetMode(cfg.App.Mode)

	services := NewServices(infra)
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window(), cfg.RateLimit.Burst)
	engine := router.New(cfg, NewHandlers(cfg, services), services.Auth, limiter)

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: engine,
	}
	return a, nil
}

func newStore(ctx context.Context, cfg *config.Config) (media.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		return infraS3.New(ctx, &cfg.S3)
	default:
		return infraMinio.New(ctx, &cfg.MinIO)
	}
}

// Run 启动 HTTP 服务，收到信号或 ctx 取消后优雅关闭
func (a *App) Run(ctx context.Context) error {
	logger.Info("Starting application",
		zap.String("name", a.cfg.App.Name),
		zap.String("version", a.cfg.App.Version),
		zap.String("mode", a.cfg.App.Mode),
		zap.String("addr", a.server.Addr),
	)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- a.server.ListenAndServe()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case <-ctx.Done():
		logger.Info("Context canceled, shutting down server")
	case sig := <-signalCh:
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout())
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// Close 按初始化的逆序释放连接
func (a *App) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Error("Failed to close kafka producer", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}
}
