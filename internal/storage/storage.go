// Package storage uploads destination images to object storage and builds
// the public URLs clients load them from.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// Bucket is a write-only view of an object store with public read URLs.
type Bucket interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	PublicURL(key string) string
}

// ImageKey is the object key a destination's image is stored under.
// Re-uploading overwrites the previous image.
func ImageKey(destinationID uuid.UUID) string {
	return "destinations/" + destinationID.String() + ".jpg"
}

// SupabaseBucket stores objects in one bucket of a Supabase project.
type SupabaseBucket struct {
	baseURL string
	bucket  string

	// storage_go.Client keeps per-upload file options in shared headers,
	// so uploads through one client are serialized.
	mu     sync.Mutex
	client *storage_go.Client
}

// NewSupabaseBucket constructs a client for bucket on the project at baseURL
// (https://<ref>.supabase.co), authenticating with apiKey.
func NewSupabaseBucket(baseURL, apiKey, bucket string) *SupabaseBucket {
	storageURL := strings.TrimRight(baseURL, "/") + "/storage/v1"
	return &SupabaseBucket{
		baseURL: storageURL,
		bucket:  bucket,
		client:  storage_go.NewClient(storageURL, apiKey, map[string]string{"apikey": apiKey}),
	}
}

// Name returns the bucket name.
func (b *SupabaseBucket) Name() string { return b.bucket }

// Upload stores body at key, replacing any existing object.
func (b *SupabaseBucket) Upload(ctx context.Context, key, contentType string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("storage.SupabaseBucket.Upload: %w", err)
	}
	upsert := true

	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.client.UploadFile(b.bucket, key, bytes.NewReader(body), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("storage.SupabaseBucket.Upload: %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the unauthenticated URL of key. An empty key yields "".
func (b *SupabaseBucket) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return b.client.GetPublicUrl(b.bucket, key).SignedURL
}

// Owns reports whether url points into this bucket's public namespace.
func (b *SupabaseBucket) Owns(url string) bool {
	return strings.HasPrefix(url, b.baseURL+"/object/public/"+b.bucket+"/")
}
