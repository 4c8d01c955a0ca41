package chunkcache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hupe1980/ucdchart/internal/cache"
	"github.com/hupe1980/ucdchart/ucd"
	"golang.org/x/sync/errgroup"
)

// Cache serves decoded chunks from a Fetcher with bounded residency.
//
// Every chunk index has at most one fetch in flight: callers requesting a
// chunk that is being fetched wait for the same result. Settled results,
// including failures, stay cached until evicted in LRU order; a request after
// eviction fetches again.
//
// Returned ChunkData values are shared between callers and must not be
// modified.
type Cache struct {
	fetcher Fetcher
	opts    options
	logger  *slog.Logger

	mu      sync.Mutex
	entries *cache.LRU[int, *future]
	fetches int64
}

type future struct {
	done  chan struct{}
	chunk *ucd.ChunkData
	err   error
}

func (f *future) settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// New creates a cache reading chunks through f.
func New(f Fetcher, optFns ...Option) *Cache {
	opts := applyOptions(optFns)
	return &Cache{
		fetcher: f,
		opts:    opts,
		logger:  opts.logger.With("component", "chunkcache"),
		entries: cache.NewLRU[int, *future](),
	}
}

// GetChunk returns the decoded chunk i.
//
// ctx bounds only the wait of this caller; the shared fetch itself runs to
// completion so that other waiters are not affected by one cancellation.
func (c *Cache) GetChunk(ctx context.Context, i int) (*ucd.ChunkData, error) {
	if i < 0 || i >= ucd.NumChunks {
		return nil, fmt.Errorf("%w: %d", ErrChunkRange, i)
	}

	f := c.lookup(ctx, i)

	select {
	case <-f.done:
		return f.chunk, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// lookup returns the registered future for i, starting a fetch if needed.
// Promotion and registration happen under one lock, so LRU order follows
// the order of calls.
func (c *Cache) lookup(ctx context.Context, i int) *future {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.entries.Get(i); ok {
		return f
	}

	f := &future{done: make(chan struct{})}
	c.entries.Set(i, f)
	c.fetches++
	c.trimLocked()

	go c.fetch(context.WithoutCancel(ctx), i, f)

	return f
}

func (c *Cache) trimLocked() {
	c.entries.Trim(c.opts.capacity, func(_ int, f *future) bool {
		return f.settled()
	}, func(i int, _ *future) {
		c.logger.Debug("chunk evicted", "chunk", i)
	})
}

func (c *Cache) fetch(ctx context.Context, i int, f *future) {
	start := time.Now()
	f.chunk, f.err = c.load(ctx, i)
	c.opts.metrics.RecordChunkFetch(i, time.Since(start), f.err)

	if f.err != nil {
		c.logger.Warn("chunk fetch failed", "chunk", i, "error", f.err)
	} else {
		c.logger.Debug("chunk fetched", "chunk", i, "characters", len(f.chunk.Characters))
	}

	close(f.done)

	// Entries that were pending at the last trim may be evictable now.
	c.mu.Lock()
	c.trimLocked()
	c.mu.Unlock()
}

func (c *Cache) load(ctx context.Context, i int) (*ucd.ChunkData, error) {
	resp, err := c.fetcher.Fetch(ctx, c.opts.prefix+ucd.ChunkNameOf(i))
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &FetchError{Chunk: i, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	chunk, err := ucd.DecodeChunkData(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chunkcache: decode chunk %d: %w", i, err)
	}
	return chunk, nil
}

// Prefetch fetches the given chunks concurrently and returns the first error.
func (c *Cache) Prefetch(ctx context.Context, indices ...int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.prefetchLimit)

	for _, i := range indices {
		g.Go(func() error {
			_, err := c.GetChunk(ctx, i)
			return err
		})
	}

	return g.Wait()
}

// Contains reports whether chunk i is resident or being fetched, without
// changing its recency.
func (c *Cache) Contains(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries.Peek(i)
	return ok
}

// Len returns the number of resident or pending chunks.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Stats describes cache activity.
type Stats struct {
	Hits    int64
	Misses  int64
	Fetches int64
}

// Stats returns hit, miss and fetch counts.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits, misses := c.entries.Stats()
	return Stats{Hits: hits, Misses: misses, Fetches: c.fetches}
}
