// Package storage uploads product images to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"floramia-be/internal/config"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, dir, filename, contentType string, data []byte) (string, error)
}

type s3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds the client from app config. Works with AWS S3 and
// S3-compatible services (MinIO, Spaces, R2) when S3_ENDPOINT-style static
// credentials are supplied.
func NewS3Store(cfg *config.Config) (Uploader, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("storage: S3_BUCKET is not configured")
	}

	region := cfg.S3Region
	if region == "" {
		region = "ap-southeast-1"
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}
	if cfg.S3Key != "" && cfg.S3Secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	baseURL := strings.TrimRight(cfg.S3BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
	}

	return &s3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *s3Store) Upload(ctx context.Context, dir, filename, contentType string, data []byte) (string, error) {
	key := path.Join(dir, uuid.New().String()+path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}
