// Package docstore persists opaque documents by key.
package docstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}
