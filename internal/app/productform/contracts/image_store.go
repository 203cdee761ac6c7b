package contracts

import (
	"context"
	"io"
)

// ImageStore keeps uploaded product images.
type ImageStore interface {
	// Put stores the object under key, overwriting any previous content,
	// and returns its public URL.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
