package ucdchart

import (
	"context"
	"io"

	"github.com/hupe1980/ucdchart/blobstore"
	"github.com/hupe1980/ucdchart/chunkstore"
	"github.com/hupe1980/ucdchart/generate"
)

// Generate rebuilds the database in store from the UnicodeData.txt read
// from r. WithPrefix, WithIndexName, WithLogger, WithMetricsCollector,
// WithWriteCapacity, WithMaxBackgroundWrites and WithIOLimit apply.
func Generate(ctx context.Context, store blobstore.BlobStore, r io.Reader, optFns ...Option) (*generate.Result, error) {
	opts := applyOptions(optFns)

	storeOpts := []chunkstore.Option{
		chunkstore.WithPrefix(opts.prefix),
		chunkstore.WithMetrics(opts.metricsCollector),
	}
	if opts.writeCapacity > 0 {
		storeOpts = append(storeOpts, chunkstore.WithCapacity(opts.writeCapacity))
	}
	if opts.maxWrites > 0 {
		storeOpts = append(storeOpts, chunkstore.WithMaxBackgroundWrites(opts.maxWrites))
	}
	if opts.ioLimit > 0 {
		storeOpts = append(storeOpts, chunkstore.WithIOLimit(opts.ioLimit))
	}

	job := generate.New(store,
		generate.WithLogger(opts.logger.Logger),
		generate.WithIndexName(opts.indexName),
		generate.WithStoreOptions(storeOpts...),
	)
	return job.RunUnicodeData(ctx, r)
}
