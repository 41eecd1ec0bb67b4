// Package storage provides object storage for data set backups.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	infraconfig "github.com/smartauto/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BackupStore persists exported backup documents out of band
type BackupStore interface {
	// Store writes the backup document and returns the storage key
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}

// S3BackupStore implements BackupStore on any S3-compatible backend
// (AWS S3, MinIO, and friends).
type S3BackupStore struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// NewS3BackupStore creates a new S3-backed backup store from configuration
func NewS3BackupStore(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3BackupStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3BackupStore{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.BackupPrefix, "/"),
		logger: logger.Named("backup"),
		now:    time.Now,
	}, nil
}

// Store uploads the backup document under a timestamped key
func (s *S3BackupStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/smartauto-backup-%s.json", s.prefix, s.now().UTC().Format("20060102-150405"))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	s.logger.Info("Backup uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return key, nil
}

var _ BackupStore = (*S3BackupStore)(nil)
