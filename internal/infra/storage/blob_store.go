// Package storage implements vendor asset uploads on a blob bucket.
package storage

import (
	"context"
	"io"
	"strings"

	"bazaar/config"
	"bazaar/internal/domain/lifecycle"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers registered for blob.OpenBucket URL resolution.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// blobStore implements the service.ObjectStore interface on a gocloud.dev
// bucket, so local filesystem and S3-compatible backends share one code path.
type blobStore struct {
	bucket    *blob.Bucket
	publicURL string
}

// NewBlobStore is the constructor for blobStore.
func NewBlobStore(params Params) (service.ObjectStore, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{
		bucket:    bucket,
		publicURL: strings.TrimRight(params.Config.Storage.PublicURL, "/"),
	}, nil
}

// Upload streams the content into the bucket under the key and returns the
// public URL clients should use to fetch it.
func (s *blobStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write object")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize object")
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes an object from the bucket. Deleting a missing key is not an
// error, so retried cleanups stay idempotent.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrap(err, "failed to check object existence")
	}
	if !exists {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "failed to delete object")
	}

	return nil
}
