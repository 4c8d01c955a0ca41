package ucdchart

import (
	"log/slog"

	"github.com/hupe1980/ucdchart/blobstore"
	"github.com/hupe1980/ucdchart/chunkcache"
	"github.com/hupe1980/ucdchart/ucd"
)

type options struct {
	store            blobstore.BlobStore
	baseURL          string
	fetcher          chunkcache.Fetcher
	cacheCapacity    int
	prefix           string
	indexName        string
	metricsCollector MetricsCollector
	logger           *Logger
	writeCapacity    int
	maxWrites        int64
	ioLimit          int64
}

// Option configures Open and Generate.
type Option func(*options)

// WithStore reads chunks and the category index from a blob store.
//
// Local stores map the index into memory instead of copying it.
func WithStore(s blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithBaseURL reads chunks and the category index over HTTP from baseURL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithFetcher reads chunks through f. It takes precedence over WithStore
// and WithBaseURL for chunk reads.
func WithFetcher(f chunkcache.Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithCacheCapacity sets the number of decoded chunks kept in memory.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}

// WithPrefix sets the path prefix of chunk files. The default is
// chunkcache.DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithIndexName sets the name of the category index. An empty name
// disables the index.
func WithIndexName(name string) Option {
	return func(o *options) {
		o.indexName = name
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ucdchart.BasicMetricsCollector{}
//	db, _ := ucdchart.Open(ctx, ucdchart.WithStore(store), ucdchart.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Fetches: %d, Avg latency: %dns\n", stats.FetchCount, stats.FetchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ucdchart.NewJSONLogger(slog.LevelInfo)
//	db, _ := ucdchart.Open(ctx, ucdchart.WithStore(store), ucdchart.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithWriteCapacity sets the number of chunks Generate keeps in memory.
func WithWriteCapacity(n int) Option {
	return func(o *options) {
		o.writeCapacity = n
	}
}

// WithMaxBackgroundWrites bounds concurrent chunk writes during Generate.
func WithMaxBackgroundWrites(n int64) Option {
	return func(o *options) {
		o.maxWrites = n
	}
}

// WithIOLimit caps the chunk write rate of Generate in bytes per second.
// Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		prefix:           chunkcache.DefaultPrefix,
		indexName:        ucd.IndexName,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
