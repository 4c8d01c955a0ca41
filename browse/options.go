package browse

import (
	"io"
	"log/slog"

	"github.com/hupe1980/ucdchart/ucd"
)

// DefaultMaxScanChunks bounds the chunks one index-backed load may span.
const DefaultMaxScanChunks = 64

type options struct {
	index         *ucd.CategoryIndex
	maxScanChunks int
	logger        *slog.Logger
}

// Option configures a Loader.
type Option func(*options)

// WithCategoryIndex answers membership from x instead of fetching chunks.
func WithCategoryIndex(x *ucd.CategoryIndex) Option {
	return func(o *options) { o.index = x }
}

// WithMaxScanChunks sets how many chunks an index-backed load may cross
// looking for a match. Values below 1 are ignored.
func WithMaxScanChunks(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxScanChunks = n
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func applyOptions(optFns []Option) options {
	o := options{maxScanChunks: DefaultMaxScanChunks}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
