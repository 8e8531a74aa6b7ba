// Package storage provides the object-storage interface used to stage audio
// for the remote speech service. The only supported backend is Amazon S3
// (or an S3-compatible service such as MinIO).
//
// Staged objects are never deleted by this service: retention is delegated
// to bucket lifecycle rules configured out-of-band.
package storage

import (
	"context"
	"io"
	"time"
)

// Storage defines the interface for object storage operations.
type Storage interface {
	// EnsureBucket creates the configured bucket if it does not already
	// exist. It is idempotent.
	EnsureBucket(ctx context.Context) error

	// Upload writes data from reader to the given path, tagging it with
	// contentType when non-empty.
	Upload(ctx context.Context, path string, reader io.Reader, contentType string) error

	// SignedURL returns a read-only pre-signed URL for the object at the
	// given path, valid for the specified duration from issuance.
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
