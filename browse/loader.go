package browse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/ucdchart/ucd"
	"github.com/hupe1980/ucdchart/vlist"
)

// ChunkSource provides decoded chunks. *chunkcache.Cache implements it.
type ChunkSource interface {
	GetChunk(ctx context.Context, i int) (*ucd.ChunkData, error)
}

// Loader expands lists by one chunk per call.
type Loader struct {
	chunks ChunkSource
	filter Filter
	opts   options
	logger *slog.Logger
}

// NewLoader creates a loader reading chunks from src and keeping code
// points that pass filter.
func NewLoader(src ChunkSource, filter Filter, optFns ...Option) *Loader {
	opts := applyOptions(optFns)
	return &Loader{
		chunks: src,
		filter: filter,
		opts:   opts,
		logger: opts.logger.With("component", "browse", "filter", filter.Categories.String()),
	}
}

// Filter returns the loader's filter.
func (l *Loader) Filter() Filter { return l.filter }

// LoadBackward expands list below its low frontier, up to the start of the
// chunk holding the preceding code point and further when skip counters or
// the index allow it. A list already starting at U+0000 is returned as is.
func (l *Loader) LoadBackward(ctx context.Context, list vlist.List) (vlist.List, error) {
	high := list.Frontier().Low
	if high == 0 {
		return list, nil
	}

	i := ucd.ChunkIndexOf(high - 1)
	lo, _ := ucd.ChunkRangeOf(i)
	r := vlist.Range{Low: lo, High: high}

	var points []uint32

	switch {
	case l.filter.Trivial():
		points = sequence(r)
	case l.opts.index != nil:
		for n := 1; n < l.opts.maxScanChunks && r.Low > 0 && !l.opts.index.Any(l.filter.Categories, r.Low, r.High); n++ {
			r.Low -= ucd.ChunkSize
		}
		points = l.opts.index.Select(l.filter.Categories, r.Low, r.High)
	default:
		chunk, err := l.chunks.GetChunk(ctx, i)
		if err != nil {
			return list, err
		}
		if points, err = l.match(chunk, r); err != nil {
			return list, err
		}
		if chunk.BackwardSkips != nil {
			skip := min(int(chunk.BackwardSkips.Min(l.filter.Categories)), i)
			r.Low -= uint32(skip) * ucd.ChunkSize
		}
	}

	l.logger.Debug("loaded backward", "low", r.Low, "high", r.High, "points", len(points))

	return list.ExpandBackward(points, r), nil
}

// LoadForward expands list above its high frontier, symmetric to
// LoadBackward.
func (l *Loader) LoadForward(ctx context.Context, list vlist.List) (vlist.List, error) {
	low := list.Frontier().High
	if low >= ucd.CodePointLimit {
		return list, nil
	}

	i := ucd.ChunkIndexOf(low)
	_, hi := ucd.ChunkRangeOf(i)
	r := vlist.Range{Low: low, High: hi}

	var points []uint32

	switch {
	case l.filter.Trivial():
		points = sequence(r)
	case l.opts.index != nil:
		for n := 1; n < l.opts.maxScanChunks && r.High < ucd.CodePointLimit && !l.opts.index.Any(l.filter.Categories, r.Low, r.High); n++ {
			r.High += ucd.ChunkSize
		}
		points = l.opts.index.Select(l.filter.Categories, r.Low, r.High)
	default:
		chunk, err := l.chunks.GetChunk(ctx, i)
		if err != nil {
			return list, err
		}
		if points, err = l.match(chunk, r); err != nil {
			return list, err
		}
		if chunk.ForwardSkips != nil {
			skip := min(int(chunk.ForwardSkips.Min(l.filter.Categories)), ucd.NumChunks-1-i)
			r.High += uint32(skip) * ucd.ChunkSize
		}
	}

	l.logger.Debug("loaded forward", "low", r.Low, "high", r.High, "points", len(points))

	return list.ExpandForward(points, r), nil
}

// match returns the code points of r in chunk that pass the filter.
func (l *Loader) match(chunk *ucd.ChunkData, r vlist.Range) ([]uint32, error) {
	derived, err := ucd.DeriveChunk(chunk, r.Low, r.High)
	if err != nil {
		return nil, fmt.Errorf("browse: chunk %d: %w", chunk.ChunkIndex, err)
	}

	var points []uint32
	for _, d := range derived {
		if l.filter.Match(d.GeneralCategory) {
			points = append(points, d.CodePoint)
		}
	}
	return points, nil
}

func sequence(r vlist.Range) []uint32 {
	out := make([]uint32, 0, r.High-r.Low)
	for cp := r.Low; cp < r.High; cp++ {
		out = append(out, cp)
	}
	return out
}
