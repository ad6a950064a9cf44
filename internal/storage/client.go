// Package storage provides the MinIO-backed object storage used for event
// banners and lead export files.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"leadcapture_backend/platform/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	// PresignedURLTTL is the expiration time for presigned download URLs.
	PresignedURLTTL = 15 * time.Minute
)

// Client wraps the MinIO SDK with the bucket layout used by the application.
type Client struct {
	client       *minio.Client
	bannerBucket string
	exportBucket string
	maxFileSize  int64
}

// New creates a storage client from configuration.
func New(cfg config.MinIOConfig) (*Client, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Client{
		client:       client,
		bannerBucket: cfg.GetMinioBucketEventBanners(),
		exportBucket: cfg.GetMinioBucketLeadExports(),
		maxFileSize:  cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBuckets creates the application buckets if they don't exist.
// Called once at startup.
func (c *Client) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{c.bannerBucket, c.exportBucket} {
		exists, err := c.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket existence: %w", err)
		}
		if !exists {
			if err := c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

func (c *Client) put(ctx context.Context, bucket, key, contentType string, data []byte) error {
	if int64(len(data)) > c.maxFileSize {
		return fileTooLargeError(int64(len(data)), c.maxFileSize)
	}

	_, err := c.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

func (c *Client) presignedGet(ctx context.Context, bucket, key string) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := c.client.PresignedGetObject(ctx, bucket, key, PresignedURLTTL, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return presignedURL.String(), nil
}

func (c *Client) remove(ctx context.Context, bucket, key string) error {
	if err := c.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
