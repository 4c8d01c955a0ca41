package chunkstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/ucdchart/blobstore"
	"github.com/hupe1980/ucdchart/internal/cache"
	"github.com/hupe1980/ucdchart/internal/resource"
	"github.com/hupe1980/ucdchart/ucd"
)

// Store gives reference-counted read-modify-write access to chunk files with
// deferred write-back.
//
// At most one load or write-back is in flight per chunk at any time.
// Handles opened on the same chunk share one in-memory ChunkData; mutations
// are visible to every holder immediately.
type Store struct {
	blobs  blobstore.BlobStore
	opts   options
	logger *slog.Logger
	rc     *resource.Controller

	mu     sync.Mutex
	chunks *cache.LRU[int, *chunkState]
	errs   []error
	closed bool

	wg sync.WaitGroup
}

// New creates a store persisting chunks to blobs.
func New(blobs blobstore.BlobStore, optFns ...Option) *Store {
	opts := applyOptions(optFns)
	return &Store{
		blobs:  blobs,
		opts:   opts,
		logger: opts.logger.With("component", "chunkstore"),
		rc:     resource.NewController(opts.resource),
		chunks: cache.NewLRU[int, *chunkState](),
	}
}

// Capacity returns the configured resident chunk budget.
func (s *Store) Capacity() int { return s.opts.capacity }

// OpenChunk acquires chunk i, loading it if needed. A missing chunk file
// yields an empty chunk. The returned handle must be released.
func (s *Store) OpenChunk(ctx context.Context, i int) (*Handle, error) {
	if i < 0 || i >= ucd.NumChunks {
		return nil, fmt.Errorf("%w: %d", ErrChunkRange, i)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	st, ok := s.chunks.Get(i)
	if !ok {
		st = &chunkState{}
		s.chunks.Set(i, st)
	}
	st.rc++

	for st.data == nil {
		if st.io != nil {
			wait := st.io
			s.mu.Unlock()
			select {
			case <-wait:
			case <-ctx.Done():
			}
			s.mu.Lock()
			if err := ctx.Err(); err != nil {
				s.abandonLocked(i, st)
				return nil, err
			}
			continue
		}

		if err := s.loadLocked(ctx, i, st); err != nil {
			s.abandonLocked(i, st)
			return nil, err
		}
	}

	return &Handle{store: s, index: i, state: st}, nil
}

// loadLocked reads chunk i with s.mu released during the read.
func (s *Store) loadLocked(ctx context.Context, i int, st *chunkState) error {
	if _, err := st.lock(); err != nil {
		return err
	}
	s.evictLocked()

	s.mu.Unlock()
	start := time.Now()
	data, err := s.read(ctx, i)
	s.opts.metrics.RecordChunkLoad(i, time.Since(start), err)
	s.mu.Lock()

	st.unlock()
	if err != nil {
		s.logger.Error("chunk load failed", "chunk", i, "error", err)
		return err
	}

	st.data = data
	return nil
}

// abandonLocked drops the reference taken by a failed OpenChunk.
func (s *Store) abandonLocked(i int, st *chunkState) {
	st.rc--
	if st.rc == 0 && st.phase() == phaseUnloaded {
		s.chunks.Delete(i)
	}
}

func (s *Store) name(i int) string {
	return s.opts.prefix + ucd.ChunkNameOf(i)
}

func (s *Store) read(ctx context.Context, i int) (*ucd.ChunkData, error) {
	b, err := s.blobs.Get(ctx, s.name(i))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return ucd.NewChunkData(i), nil
		}
		return nil, err
	}

	chunk, err := ucd.DecodeChunkData(b)
	if err != nil {
		return nil, fmt.Errorf("chunkstore: decode chunk %d: %w", i, err)
	}
	return chunk, nil
}

func (s *Store) release(i int, st *chunkState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.chunks.Peek(i)
	if !ok || cur != st || st.rc <= 0 {
		return fmt.Errorf("%w: %d", ErrNotOpened, i)
	}

	st.rc--
	if st.rc == 0 {
		s.evictLocked()
	}
	return nil
}

// evictLocked trims the store to capacity. Chunks that are held or idle count
// against the budget; only unreferenced idle chunks can be evicted.
func (s *Store) evictLocked() {
	count := 0
	for _, st := range s.chunks.Oldest() {
		if st.rc > 0 || st.io == nil {
			count++
		}
	}

	excess := count - s.opts.capacity
	if excess <= 0 {
		return
	}

	for i, st := range s.chunks.Oldest() {
		if st.rc > 0 || st.io != nil {
			continue
		}
		s.evictChunkLocked(i, st)
		excess--
		if excess <= 0 {
			break
		}
	}
}

// evictChunkLocked drops a clean chunk or starts its write-back.
// It must only be called with st.rc == 0 and no I/O in flight.
func (s *Store) evictChunkLocked(i int, st *chunkState) {
	if !st.dirty || st.data == nil {
		s.chunks.Delete(i)
		return
	}

	if _, err := st.lock(); err != nil {
		s.logger.Error("write-back not started", "chunk", i, "error", err)
		return
	}

	// Cleared before the write so that a holder re-flagging the chunk during
	// the write keeps it dirty.
	st.dirty = false
	payload := ucd.EncodeChunkData(st.data)

	s.wg.Add(1)
	go s.writeBack(i, st, payload)
}

func (s *Store) writeBack(i int, st *chunkState, payload []byte) {
	defer s.wg.Done()

	ctx := context.Background()
	start := time.Now()
	err := s.rc.AcquireBackground(ctx)
	if err == nil {
		err = s.rc.AcquireIO(ctx, len(payload))
		if err == nil {
			err = s.blobs.Put(ctx, s.name(i), payload)
		}
		s.rc.ReleaseBackground()
	}
	s.opts.metrics.RecordWriteBack(i, len(payload), time.Since(start), err)

	s.mu.Lock()
	defer s.mu.Unlock()

	st.unlock()

	if err != nil {
		werr := &WriteBackError{Chunk: i, Err: err}
		s.logger.Error("chunk write-back failed", "chunk", i, "error", err)
		s.errs = append(s.errs, werr)
	} else {
		s.logger.Debug("chunk written", "chunk", i, "bytes", len(payload))
	}

	if st.rc > 0 || st.dirty {
		// Reacquired or modified during the write: stays resident.
		if err != nil {
			st.dirty = true
		}
		s.evictLocked()
		return
	}

	st.data = nil
	s.chunks.Delete(i)
	s.evictLocked()
}

// Close flushes every dirty chunk and waits until no I/O is in flight.
//
// It returns a *StuckError if a chunk is still referenced while nothing is
// in flight, which means a handle was leaked. Background write-back failures
// are joined into the returned error.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true

	for {
		var waits []chan struct{}
		var held []int
		pending := false

		for i, st := range s.chunks.Oldest() {
			switch {
			case st.io != nil:
				waits = append(waits, st.io)
				pending = true
			case st.rc > 0:
				held = append(held, i)
				pending = true
			case st.dirty:
				s.evictChunkLocked(i, st)
				if st.io != nil {
					waits = append(waits, st.io)
				}
				pending = true
			}
		}

		if !pending {
			break
		}
		if len(waits) == 0 {
			slices.Sort(held)
			s.mu.Unlock()
			return &StuckError{Chunks: held}
		}

		s.mu.Unlock()
		for _, w := range waits {
			select {
			case <-w:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		s.mu.Lock()
	}

	errs := errors.Join(s.errs...)
	s.mu.Unlock()

	s.wg.Wait()
	return errs
}

// Resident returns the number of chunks currently tracked.
func (s *Store) Resident() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks.Len()
}

// Flush writes back every dirty unreferenced chunk without closing the store.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	var waits []chan struct{}
	for i, st := range s.chunks.Oldest() {
		if st.rc == 0 && st.io == nil && st.dirty {
			s.evictChunkLocked(i, st)
		}
		if st.io != nil {
			waits = append(waits, st.io)
		}
	}
	s.mu.Unlock()

	for _, w := range waits {
		select {
		case <-w:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
