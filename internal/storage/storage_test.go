package storage_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/smarttrav/internal/domain"
	"github.com/pkordes/smarttrav/internal/storage"
)

func TestImageKey(t *testing.T) {
	id := uuid.MustParse("6f1c1a2e-8d3b-4c1e-9a55-0b7d2f0c9e11")
	assert.Equal(t, "destinations/6f1c1a2e-8d3b-4c1e-9a55-0b7d2f0c9e11.jpg", storage.ImageKey(id))
}

func TestSupabaseBucket_Upload(t *testing.T) {
	var (
		gotPath, gotAuth, gotKey, gotUpsert, gotType string
		gotBody                                      []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotUpsert = r.Header.Get("x-upsert")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"Key":"destination-images/destinations/x.jpg"}`)
	}))
	t.Cleanup(srv.Close)

	b := storage.NewSupabaseBucket(srv.URL+"/", "service-key", "destination-images")
	err := b.Upload(context.Background(), "destinations/x.jpg", "image/jpeg", []byte("jpeg-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/destination-images/destinations/x.jpg", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotKey)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, []byte("jpeg-bytes"), gotBody)
}

func TestSupabaseBucket_Upload_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	b := storage.NewSupabaseBucket(srv.URL, "k", "missing")
	err := b.Upload(context.Background(), "a.jpg", "image/jpeg", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.jpg")
}

func TestSupabaseBucket_Upload_CanceledContext(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := storage.NewSupabaseBucket(srv.URL, "k", "b").Upload(ctx, "a.jpg", "image/jpeg", nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSupabaseBucket_PublicURL(t *testing.T) {
	b := storage.NewSupabaseBucket("https://abc.supabase.co", "k", "destination-images")

	url := b.PublicURL("destinations/x.jpg")

	assert.Equal(t, "https://abc.supabase.co/storage/v1/object/public/destination-images/destinations/x.jpg", url)
	assert.Equal(t, "", b.PublicURL(""))
	assert.True(t, b.Owns(url))
	assert.False(t, b.Owns("https://abc.supabase.co/storage/v1/object/public/other-bucket/x.jpg"))
	assert.False(t, b.Owns("https://example.com/x.jpg"))
}

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 30, G: 144, B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return &buf
}

func TestPrepareImage_ShrinksWideImages(t *testing.T) {
	out, err := storage.PrepareImage(encodePNG(t, 2400, 600))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, storage.MaxImageWidth, cfg.Width)
	assert.Equal(t, 300, cfg.Height, "aspect ratio should be preserved")
}

func TestPrepareImage_KeepsSmallImages(t *testing.T) {
	out, err := storage.PrepareImage(encodePNG(t, 640, 480))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestPrepareImage_RejectsNonImage(t *testing.T) {
	_, err := storage.PrepareImage(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
