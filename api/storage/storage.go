package storage

import (
	"context"
	"io"
)

// FileStore keeps uploaded images. Put returns the public source URL of the
// stored object; Delete takes that URL.
type FileStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, source string) error
}
