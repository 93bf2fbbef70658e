package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bakked-marketing/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// SupabaseStorage uploads media to a Supabase Storage bucket and hands back
// public URLs usable as WhatsApp media links.
type SupabaseStorage struct {
	baseURL string
	bucket  string
	http    *resty.Client
}

func NewSupabaseStorage(cfg *config.Config) *SupabaseStorage {
	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetAuthToken(cfg.SupabaseServiceKey)

	return &SupabaseStorage{
		baseURL: strings.TrimRight(cfg.SupabaseURL, "/"),
		bucket:  cfg.StorageBucket,
		http:    httpClient,
	}
}

func (s *SupabaseStorage) Configured() bool {
	return s.baseURL != ""
}

// Upload stores the file under a uuid-prefixed object name and returns the
// public URL.
func (s *SupabaseStorage) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if !s.Configured() {
		return "", fmt.Errorf("supabase storage not configured")
	}

	objectPath := fmt.Sprintf("uploads/%s_%s", strings.ReplaceAll(uuid.NewString(), "-", ""), filename)

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage upload failed: %s - %s", resp.Status(), resp.String())
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}

// Delete removes an object by its path within the bucket.
func (s *SupabaseStorage) Delete(ctx context.Context, objectPath string) error {
	if !s.Configured() {
		return fmt.Errorf("supabase storage not configured")
	}

	resp, err := s.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("storage delete failed: %s - %s", resp.Status(), resp.String())
	}
	return nil
}
