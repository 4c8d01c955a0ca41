package generate

import (
	"io"
	"log/slog"

	"github.com/hupe1980/ucdchart/chunkstore"
	"github.com/hupe1980/ucdchart/ucd"
)

// DefaultConcurrency is the default number of chunks updated in parallel
// by the skip pass.
const DefaultConcurrency = 4

type options struct {
	logger      *slog.Logger
	concurrency int
	indexName   string
	storeOpts   []chunkstore.Option
}

// Option configures a Job.
type Option func(*options)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConcurrency bounds the chunks updated in parallel. Values below 1 are
// ignored.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithIndexName sets the blob name of the category index. An empty name
// skips the index.
func WithIndexName(name string) Option {
	return func(o *options) { o.indexName = name }
}

// WithStoreOptions passes options to the chunk store of each run.
func WithStoreOptions(opts ...chunkstore.Option) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, opts...) }
}

func applyOptions(optFns []Option) options {
	o := options{
		concurrency: DefaultConcurrency,
		indexName:   ucd.IndexName,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
