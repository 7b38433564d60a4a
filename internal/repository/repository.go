package repository

import (
	"context"
	"io"
)

// BlobRepository writes objects into the configured bucket.
// Implementations must be safe for concurrent use by multiple requests.
type BlobRepository interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}
