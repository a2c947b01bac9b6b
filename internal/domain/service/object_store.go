package service

import (
	"context"
	"io"
)

// ObjectStore defines the interface for binary asset storage (logos,
// banners, registration certificates).
type ObjectStore interface {
	// Upload writes the object under the given key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (url string, err error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
