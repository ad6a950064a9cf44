package storage

import (
	"context"
	"fmt"
	"time"
)

// ExportStore stores generated lead export files (CSV) and hands out
// short-lived download links.
type ExportStore struct {
	client *Client
}

// NewExportStore creates an export store on top of the shared client.
func NewExportStore(client *Client) *ExportStore {
	return &ExportStore{client: client}
}

// Upload stores an export file under a timestamped key and returns the key.
func (s *ExportStore) Upload(ctx context.Context, eventSlug string, data []byte) (string, error) {
	key := fmt.Sprintf("exports/%s/leads_%s.csv", eventSlug, time.Now().UTC().Format("20060102T150405Z"))
	if err := s.client.put(ctx, s.client.exportBucket, key, "text/csv", data); err != nil {
		return "", err
	}
	return key, nil
}

// DownloadURL returns a presigned GET URL for a stored export.
func (s *ExportStore) DownloadURL(ctx context.Context, key string) (string, error) {
	return s.client.presignedGet(ctx, s.client.exportBucket, key)
}
