package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading and writing whole named blobs
// (chunk files and the category index).
type BlobStore interface {
	// Get returns the full contents of a blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put writes a blob atomically, replacing any previous contents.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only view of a blob's bytes.
type Blob interface {
	// Bytes returns the contents. The slice is valid until Close.
	Bytes() []byte
	Close() error
}

// Mapper is an optional interface for stores that can expose a blob
// without copying it.
type Mapper interface {
	Map(ctx context.Context, name string) (Blob, error)
}

// Map returns a zero-copy view of the blob when the store supports it and
// falls back to Get otherwise.
func Map(ctx context.Context, s BlobStore, name string) (Blob, error) {
	if m, ok := s.(Mapper); ok {
		return m.Map(ctx, name)
	}

	data, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return bytesBlob(data), nil
}

type bytesBlob []byte

func (b bytesBlob) Bytes() []byte { return b }
func (b bytesBlob) Close() error  { return nil }
