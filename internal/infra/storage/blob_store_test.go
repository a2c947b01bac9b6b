package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newTestStore(t *testing.T) *blobStore {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return &blobStore{
		bucket:    bucket,
		publicURL: "https://cdn.example.com",
	}
}

func TestBlobStore_UploadReturnsPublicURL(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	url, err := store.Upload(ctx, "vendors/abc/logo-1.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/vendors/abc/logo-1.png", url)

	data, err := store.bucket.ReadAll(ctx, "vendors/abc/logo-1.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	attrs, err := store.bucket.Attributes(ctx, "vendors/abc/logo-1.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)
}

func TestBlobStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, "vendors/abc/banner-1.jpg", "image/jpeg", strings.NewReader("jpg-bytes"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "vendors/abc/banner-1.jpg"))

	exists, err := store.bucket.Exists(ctx, "vendors/abc/banner-1.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is idempotent.
	assert.NoError(t, store.Delete(ctx, "vendors/abc/banner-1.jpg"))
}
