package s3

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/internal/media"
	"vidtube-go/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// Store S3 兼容存储，实现 media.Store
type Store struct {
	client   *awss3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// New 通过默认凭证链创建客户端，Endpoint 非空时使用 path-style 访问
func New(ctx context.Context, cfg *config.S3Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 8 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Info("S3 storage configured",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region),
	)

	return &Store{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload 分片上传本地文件
func (s *Store) Upload(ctx context.Context, localPath string, kind media.Kind) (*media.Asset, error) {
	info, err := media.Inspect(localPath, kind)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := media.ObjectKey(kind, localPath, time.Now())
	_, err = s.uploader.Upload(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(info.ContentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 storage upload %s: %w", key, err)
	}

	return &media.Asset{
		URL:         media.PublicURL(s.baseURL, key),
		Key:         key,
		ContentType: info.ContentType,
		Size:        info.Size,
		Duration:    info.Duration,
	}, nil
}

// Delete 删除对象
func (s *Store) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	key, err := media.KeyFromURL(s.baseURL, url)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 storage delete %s: %w", key, err)
	}
	return nil
}
