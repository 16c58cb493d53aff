// Package storage provides blob storage for avatar images behind a small
// interface, with an S3-compatible implementation.
package storage

import (
	"context"
	"time"
)

// ObjectStore is the blob-storage surface needed for avatar handling.
type ObjectStore interface {
	// PublicURL composes the public download URL for path. This is a local
	// operation with no existence check: a non-empty result is not proof
	// the object exists. Returns "" when the bucket is not public.
	PublicURL(path string) string

	// SignedURL requests a time-boxed download URL for path. Unlike
	// PublicURL this is a service call and can fail (missing object,
	// policy denial).
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)

	// Upload stores data at path. With overwrite set, an existing object
	// at the same path is replaced; without it, the write fails if the
	// path is taken.
	Upload(ctx context.Context, path string, data []byte, contentType string, overwrite bool) error
}
