package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Storage       StorageConfig       `mapstructure:"storage"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	S3            S3Config            `mapstructure:"s3"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Auth          AuthConfig          `mapstructure:"auth"`
	CORS          CORSConfig          `mapstructure:"cors"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name                   string `mapstructure:"name"`
	Version                string `mapstructure:"version"`
	Mode                   string `mapstructure:"mode"`
	Port                   int    `mapstructure:"port"`
	StaticDir              string `mapstructure:"static_dir"`
	BodyLimitKB            int64  `mapstructure:"body_limit_kb"`
	UploadDir              string `mapstructure:"upload_dir"`
	MaxUploadMB            int64  `mapstructure:"max_upload_mb"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

// ShutdownTimeout 优雅关闭等待时间
func (a *AppConfig) ShutdownTimeout() time.Duration {
	if a.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.ShutdownTimeoutSeconds) * time.Second
}

// BodyLimitBytes 非 multipart 请求体上限
func (a *AppConfig) BodyLimitBytes() int64 {
	if a.BodyLimitKB <= 0 {
		return 16 << 10
	}
	return a.BodyLimitKB << 10
}

// MaxUploadBytes multipart 请求体上限
func (a *AppConfig) MaxUploadBytes() int64 {
	if a.MaxUploadMB <= 0 {
		return 512 << 20
	}
	return a.MaxUploadMB << 20
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置，Enabled 为 false 时登出不做 Token 吊销
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

const (
	StorageDriverMinIO = "minio"
	StorageDriverS3    = "s3"
)

// StorageConfig 媒体存储选择
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	Bucket        string `mapstructure:"bucket"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// S3Config S3 兼容存储配置
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// KafkaConfig Kafka配置，Brokers 为空时不发布视频事件
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
	GroupID string            `mapstructure:"group_id"`
}

// Topic 返回逻辑名对应的 topic，未配置时使用逻辑名本身
func (k *KafkaConfig) Topic(name string) string {
	if t, ok := k.Topics[name]; ok && t != "" {
		return t
	}
	return name
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Hosts []string          `mapstructure:"hosts"`
	Index map[string]string `mapstructure:"index"`
}

// IndexName 返回逻辑名对应的索引名
func (e *ElasticsearchConfig) IndexName(name string) string {
	if idx, ok := e.Index[name]; ok && idx != "" {
		return idx
	}
	return name
}

// AuthConfig 令牌与 Cookie 配置
type AuthConfig struct {
	AccessTokenSecret   string `mapstructure:"access_token_secret"`
	AccessTokenMinutes  int    `mapstructure:"access_token_minutes"`
	RefreshTokenSecret  string `mapstructure:"refresh_token_secret"`
	RefreshTokenMinutes int    `mapstructure:"refresh_token_minutes"`
	CookieSecure        bool   `mapstructure:"cookie_secure"`
	CookieSameSite      string `mapstructure:"cookie_same_site"`
	CookieDomain        string `mapstructure:"cookie_domain"`
}

// AccessTokenTTL 访问令牌有效期
func (a *AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.AccessTokenMinutes) * time.Minute
}

// RefreshTokenTTL 刷新令牌有效期
func (a *AuthConfig) RefreshTokenTTL() time.Duration {
	if a.RefreshTokenMinutes <= 0 {
		return 10 * 24 * time.Hour
	}
	return time.Duration(a.RefreshTokenMinutes) * time.Minute
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// RateLimitConfig 认证接口限流
type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
	Burst         int `mapstructure:"burst"`
}

// Window 限流窗口
func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// Load 加载配置文件，同目录或工作目录下的 .env 会先注入环境变量
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// auth.access_token_secret <- AUTH_ACCESS_TOKEN_SECRET
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vidtube")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.static_dir", "./public")
	v.SetDefault("app.upload_dir", "./public/temp")
	v.SetDefault("storage.driver", StorageDriverMinIO)
	v.SetDefault("kafka.group_id", "vidtube-search-indexer")
	v.SetDefault("auth.cookie_secure", true)
	v.SetDefault("auth.cookie_same_site", "none")
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("rate_limit.burst", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
}

// Validate 校验启动必需的配置项
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.AccessTokenSecret) == "" {
		errs = append(errs, errors.New("auth.access_token_secret is required"))
	}
	if strings.TrimSpace(c.Auth.RefreshTokenSecret) == "" {
		errs = append(errs, errors.New("auth.refresh_token_secret is required"))
	}
	switch c.Storage.Driver {
	case StorageDriverMinIO, StorageDriverS3:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	return errors.Join(errs...)
}
