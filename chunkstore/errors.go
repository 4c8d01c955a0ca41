package chunkstore

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOpened is returned when releasing a chunk that is not held.
	ErrNotOpened = errors.New("chunkstore: chunk is not opened")
	// ErrAlreadyLocked is returned when starting I/O on a chunk that already has I/O in flight.
	ErrAlreadyLocked = errors.New("chunkstore: chunk is already locked")
	// ErrClosed is returned when using a closed store.
	ErrClosed = errors.New("chunkstore: store is closed")
	// ErrChunkRange is returned for chunk indices outside [0, ucd.NumChunks).
	ErrChunkRange = errors.New("chunkstore: chunk index out of range")
)

// StuckError is returned by Close when chunks are still referenced and no
// I/O is in flight, so the store can never become quiescent.
type StuckError struct {
	Chunks []int
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("chunkstore: stuck closing: chunks %v still referenced", e.Chunks)
}

// WriteBackError reports a failed background write of a chunk.
type WriteBackError struct {
	Chunk int
	Err   error
}

func (e *WriteBackError) Error() string {
	return fmt.Sprintf("chunkstore: write back chunk %d: %v", e.Chunk, e.Err)
}

func (e *WriteBackError) Unwrap() error { return e.Err }
