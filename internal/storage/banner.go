package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// allowedBannerTypes lists the image content types accepted for event banners.
var allowedBannerTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// BannerStore stores event banner images. It satisfies the banner storage
// contract of the events service.
type BannerStore struct {
	client *Client
}

// NewBannerStore creates a banner store on top of the shared client.
func NewBannerStore(client *Client) *BannerStore {
	return &BannerStore{client: client}
}

// Upload validates and stores a banner image, returning its object key.
// A short random suffix keeps re-uploads from colliding with stale CDN caches.
func (s *BannerStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if !allowedBannerTypes[contentType] {
		return "", unsupportedContentTypeError(contentType)
	}

	key := fmt.Sprintf("banners/%s_%s", uuid.New().String()[:8], filename)
	if err := s.client.put(ctx, s.client.bannerBucket, key, contentType, data); err != nil {
		return "", err
	}
	return key, nil
}

// PublicURL returns a presigned GET URL for a stored banner.
func (s *BannerStore) PublicURL(ctx context.Context, key string) (string, error) {
	return s.client.presignedGet(ctx, s.client.bannerBucket, key)
}

// Delete removes a stored banner.
func (s *BannerStore) Delete(ctx context.Context, key string) error {
	return s.client.remove(ctx, s.client.bannerBucket, key)
}
