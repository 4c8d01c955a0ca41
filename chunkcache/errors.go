package chunkcache

import (
	"errors"
	"fmt"
)

// ErrChunkRange is returned for chunk indices outside [0, ucd.NumChunks).
var ErrChunkRange = errors.New("chunkcache: chunk index out of range")

// FetchError reports a non-2xx response for a chunk.
type FetchError struct {
	Chunk      int
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch chunk %d: %d %s", e.Chunk, e.StatusCode, e.Status)
}

// NotFound reports whether the chunk does not exist in the store.
func (e *FetchError) NotFound() bool {
	return e.StatusCode == 404
}
