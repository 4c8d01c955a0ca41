package ucdchart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/hupe1980/ucdchart/blobstore"
	"github.com/hupe1980/ucdchart/browse"
	"github.com/hupe1980/ucdchart/chunkcache"
	"github.com/hupe1980/ucdchart/ucd"
	"github.com/hupe1980/ucdchart/vlist"
)

// Database is a read-only view of a generated character database.
//
// It is safe for concurrent use. A Database owns its chunk cache; create
// one per data source and pass it to the code that needs it.
type Database struct {
	cache  *chunkcache.Cache
	index  *ucd.CategoryIndex
	blob   blobstore.Blob
	opts   options
	logger *Logger
	closed atomic.Bool
}

// Open opens the database configured by optFns. One of WithStore,
// WithBaseURL or WithFetcher is required.
//
// The category index is loaded when present. A missing index is not an
// error; a corrupt one is.
func Open(ctx context.Context, optFns ...Option) (*Database, error) {
	opts := applyOptions(optFns)

	fetcher := opts.fetcher
	if fetcher == nil {
		switch {
		case opts.store != nil:
			fetcher = &chunkcache.StoreFetcher{Store: opts.store}
		case opts.baseURL != "":
			fetcher = chunkcache.NewHTTPFetcher(opts.baseURL)
		default:
			return nil, ErrNoSource
		}
	}

	cacheOpts := []chunkcache.Option{
		chunkcache.WithPrefix(opts.prefix),
		chunkcache.WithLogger(opts.logger.Logger),
		chunkcache.WithMetrics(opts.metricsCollector),
	}
	if opts.cacheCapacity > 0 {
		cacheOpts = append(cacheOpts, chunkcache.WithCapacity(opts.cacheCapacity))
	}

	db := &Database{
		cache:  chunkcache.New(fetcher, cacheOpts...),
		opts:   opts,
		logger: opts.logger.WithComponent("database"),
	}

	if opts.indexName != "" {
		err := db.loadIndex(ctx, fetcher)
		db.logger.LogIndex(ctx, opts.indexName, db.index != nil, err)
		if err != nil {
			return nil, err
		}
	}

	return db, nil
}

func (db *Database) loadIndex(ctx context.Context, fetcher chunkcache.Fetcher) error {
	name := db.opts.indexName

	if db.opts.store != nil {
		blob, err := blobstore.Map(ctx, db.opts.store, name)
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("ucdchart: read index: %w", err)
		}
		x, err := ucd.MapCategoryIndex(blob.Bytes())
		if err != nil {
			_ = blob.Close()
			return fmt.Errorf("ucdchart: decode index: %w", err)
		}
		db.index, db.blob = x, blob
		return nil
	}

	resp, err := fetcher.Fetch(ctx, name)
	if err != nil {
		return fmt.Errorf("ucdchart: fetch index: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if !resp.OK() {
		return fmt.Errorf("ucdchart: fetch index: %d %s", resp.StatusCode, resp.Status)
	}
	x, err := ucd.DecodeCategoryIndex(resp.Body)
	if err != nil {
		return fmt.Errorf("ucdchart: decode index: %w", err)
	}
	db.index = x
	return nil
}

// Index returns the category index, or nil when the database has none.
func (db *Database) Index() *ucd.CategoryIndex { return db.index }

// Chunk returns the decoded chunk i. The result is shared and must not be
// modified.
func (db *Database) Chunk(ctx context.Context, i int) (*ucd.ChunkData, error) {
	if db.closed.Load() {
		return nil, ErrClosed
	}
	return db.cache.GetChunk(ctx, i)
}

// Lookup returns the derived data of cp, assigned or not.
func (db *Database) Lookup(ctx context.Context, cp uint32) (ucd.DerivedData, error) {
	if db.closed.Load() {
		return ucd.DerivedData{}, ErrClosed
	}
	if cp >= ucd.CodePointLimit {
		return ucd.DerivedData{}, fmt.Errorf("%w: 0x%x", ucd.ErrCodePointRange, cp)
	}

	chunk, err := db.cache.GetChunk(ctx, ucd.ChunkIndexOf(cp))
	if err != nil {
		db.logger.LogLookup(ctx, cp, err)
		return ucd.DerivedData{}, err
	}

	var base *ucd.CharacterData
	if ch, ok := chunk.Lookup(cp); ok {
		base = &ch
	}

	d, err := ucd.DeriveCharacter(cp, base)
	db.logger.LogLookup(ctx, cp, err)
	return d, err
}

// Loader returns a page loader for filter backed by the database's cache
// and index. It must not be used after Close.
func (db *Database) Loader(filter browse.Filter) *browse.Loader {
	opts := []browse.Option{browse.WithLogger(db.opts.logger.Logger)}
	if db.index != nil {
		opts = append(opts, browse.WithCategoryIndex(db.index))
	}
	return browse.NewLoader(db.cache, filter, opts...)
}

// List returns up to n code points passing filter, starting at from.
func (db *Database) List(ctx context.Context, filter browse.Filter, from uint32, n int) ([]ucd.DerivedData, error) {
	if db.closed.Load() {
		return nil, ErrClosed
	}

	out, err := db.list(ctx, filter, from, n)
	db.logger.LogList(ctx, filter.Encode(), len(out), err)
	return out, err
}

func (db *Database) list(ctx context.Context, filter browse.Filter, from uint32, n int) ([]ucd.DerivedData, error) {
	loader := db.Loader(filter)
	list := vlist.New(from)

	var err error
	for list.Len() < n && list.HasHighFrontier() {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if list, err = loader.LoadForward(ctx, list); err != nil {
			return nil, err
		}
	}

	cps := list.CodePoints()
	if len(cps) > n {
		cps = cps[:n]
	}

	out := make([]ucd.DerivedData, 0, len(cps))
	for _, cp := range cps {
		d, err := db.Lookup(ctx, cp)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Stats returns the chunk cache counters.
func (db *Database) Stats() chunkcache.Stats { return db.cache.Stats() }
