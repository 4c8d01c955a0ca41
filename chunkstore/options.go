package chunkstore

import (
	"io"
	"log/slog"
	"time"

	"github.com/hupe1980/ucdchart/internal/resource"
)

// DefaultCapacity is the default number of chunks kept resident.
const DefaultCapacity = 3

// DefaultMaxBackgroundWrites bounds concurrent write-backs by default.
const DefaultMaxBackgroundWrites = 4

// Metrics receives load and write-back observations.
type Metrics interface {
	RecordChunkLoad(chunk int, duration time.Duration, err error)
	RecordWriteBack(chunk int, bytes int, duration time.Duration, err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordChunkLoad(int, time.Duration, error)      {}
func (noopMetrics) RecordWriteBack(int, int, time.Duration, error) {}

type options struct {
	capacity int
	prefix   string
	logger   *slog.Logger
	metrics  Metrics
	resource resource.Config
}

// Option configures a Store.
type Option func(*options)

// WithCapacity sets how many chunks may be resident before eviction starts.
// Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithPrefix sets the blob name prefix of chunk files.
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

// WithMaxBackgroundWrites bounds concurrent background write-backs.
func WithMaxBackgroundWrites(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.resource.MaxBackgroundWorkers = n
		}
	}
}

// WithIOLimit limits write-back throughput in bytes per second.
// Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) { o.resource.IOLimitBytesPerSec = bytesPerSec }
}

func applyOptions(optFns []Option) options {
	o := options{
		capacity: DefaultCapacity,
		prefix:   "chunks/",
		metrics:  noopMetrics{},
		resource: resource.Config{MaxBackgroundWorkers: DefaultMaxBackgroundWrites},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
