package vlist

import (
	"slices"
	"sort"

	"github.com/hupe1980/ucdchart/ucd"
)

// Range is a half-open code point range [Low, High).
type Range struct {
	Low, High uint32
}

// Contains reports whether cp lies in the range.
func (r Range) Contains(cp uint32) bool { return cp >= r.Low && cp < r.High }

// List is an immutable, two-sided paginated list of code points.
//
// The frontier [low, high) is the range in which every member is known.
// The zero value is an empty list anchored at U+0000.
type List struct {
	low, high uint32
	rows      []Row
	offset    int
}

// New returns an empty list anchored at init. Values beyond the code point
// space are clamped to its end.
func New(init uint32) List {
	init = min(init, ucd.CodePointLimit)
	return List{low: init, high: init}
}

// Frontier returns the range in which the list is known to be complete.
func (l List) Frontier() Range { return Range{Low: l.low, High: l.high} }

// HasLowFrontier reports whether code points below the frontier remain to
// be loaded.
func (l List) HasLowFrontier() bool { return l.low > 0 }

// HasHighFrontier reports whether code points above the frontier remain to
// be loaded.
func (l List) HasHighFrontier() bool { return l.high < ucd.CodePointLimit }

// Offset returns the persistent key of the first row.
func (l List) Offset() int { return l.offset }

// NumRows returns the number of rows.
func (l List) NumRows() int { return len(l.rows) }

// Rows returns a copy of the rows. The code point slices are shared and
// must not be modified.
func (l List) Rows() []Row { return slices.Clone(l.rows) }

// Len returns the number of known code points.
func (l List) Len() int {
	var n int
	for _, r := range l.rows {
		n += len(r.CodePoints)
	}
	return n
}

// CodePoints returns the known code points in ascending order.
func (l List) CodePoints() []uint32 { return flatten(l.rows) }

// Contains reports whether cp is a known member of the list.
func (l List) Contains(cp uint32) bool {
	i := sort.Search(len(l.rows), func(i int) bool { return l.rows[i].last() >= cp })
	if i == len(l.rows) {
		return false
	}
	_, found := slices.BinarySearch(l.rows[i].CodePoints, cp)
	return found
}

// ExpandBackward adds the code points found in r below the frontier.
//
// r must end exactly at the low frontier; otherwise the receiver is
// returned unchanged, which discards stale or duplicate loads. Points
// outside r are ignored. Only the leading rows sharing a block with the new
// points are re-segmented, and Offset moves so that the other rows keep
// their keys.
func (l List) ExpandBackward(points []uint32, r Range) List {
	if r.High != l.low || r.Low > r.High {
		return l
	}

	fresh := within(points, r)

	n := 0
	if len(fresh) > 0 {
		edge := blockOf(fresh[len(fresh)-1])
		for n < len(l.rows) {
			row := l.rows[n]
			if !(n == 0 && row.short()) && blockOf(row.first()) != edge {
				break
			}
			edge = blockOf(row.last())
			n++
		}
	}

	head := segment(append(fresh, flatten(l.rows[:n])...), true)

	rows := make([]Row, 0, len(head)+len(l.rows)-n)
	rows = append(rows, head...)
	rows = append(rows, l.rows[n:]...)

	return List{
		low:    r.Low,
		high:   l.high,
		rows:   rows,
		offset: l.offset + n - len(head),
	}
}

// ExpandForward adds the code points found in r above the frontier. r must
// start exactly at the high frontier; otherwise the receiver is returned
// unchanged.
func (l List) ExpandForward(points []uint32, r Range) List {
	if r.Low != l.high || r.Low > r.High {
		return l
	}

	fresh := within(points, r)

	n := len(l.rows)
	if len(fresh) > 0 {
		edge := blockOf(fresh[0])
		for n > 0 {
			row := l.rows[n-1]
			if !(n == len(l.rows) && row.short()) && blockOf(row.last()) != edge {
				break
			}
			edge = blockOf(row.first())
			n--
		}
	}

	tail := segment(append(flatten(l.rows[n:]), fresh...), false)

	rows := make([]Row, 0, n+len(tail))
	rows = append(rows, l.rows[:n]...)
	rows = append(rows, tail...)

	return List{
		low:    l.low,
		high:   r.High,
		rows:   rows,
		offset: l.offset,
	}
}

// CutOffBackward drops leading rows until at most n remain. The low
// frontier moves past the dropped code points, so they have to be loaded
// again by a later ExpandBackward.
func (l List) CutOffBackward(n int) List {
	n = max(n, 0)
	if len(l.rows) <= n {
		return l
	}

	drop := len(l.rows) - n
	return List{
		low:    max(l.low, l.rows[drop-1].last()+1),
		high:   l.high,
		rows:   slices.Clone(l.rows[drop:]),
		offset: l.offset + drop,
	}
}

// CutOffForward drops trailing rows until at most n remain, moving the high
// frontier down to the first dropped code point.
func (l List) CutOffForward(n int) List {
	n = max(n, 0)
	if len(l.rows) <= n {
		return l
	}

	return List{
		low:    l.low,
		high:   min(l.high, l.rows[n].first()),
		rows:   slices.Clone(l.rows[:n]),
		offset: l.offset,
	}
}

// within returns the sorted, unique points of r.
func within(points []uint32, r Range) []uint32 {
	out := make([]uint32, 0, len(points))
	for _, cp := range points {
		if r.Contains(cp) {
			out = append(out, cp)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
