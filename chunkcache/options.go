package chunkcache

import (
	"io"
	"log/slog"
	"time"
)

// DefaultCapacity is the default number of resident chunks.
const DefaultCapacity = 3

// DefaultPrefix is the default path prefix of chunk files.
const DefaultPrefix = "chunks/"

// Metrics receives one observation per underlying chunk fetch.
type Metrics interface {
	RecordChunkFetch(chunk int, duration time.Duration, err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordChunkFetch(int, time.Duration, error) {}

type options struct {
	capacity      int
	prefix        string
	logger        *slog.Logger
	metrics       Metrics
	prefetchLimit int
}

// Option configures a Cache.
type Option func(*options)

// WithCapacity sets the maximum number of settled chunks kept in memory.
// Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithPrefix sets the path prefix prepended to chunk file names.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithPrefetchLimit bounds concurrent fetches issued by Prefetch.
func WithPrefetchLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.prefetchLimit = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		capacity:      DefaultCapacity,
		prefix:        DefaultPrefix,
		metrics:       noopMetrics{},
		prefetchLimit: 4,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
