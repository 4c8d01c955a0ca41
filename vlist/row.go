package vlist

import "fmt"

const (
	// RowWidth is the number of cells in a row.
	RowWidth = 16
	// AlignThreshold is the number of known code points in one block that
	// turns them into an Aligned row.
	AlignThreshold = 8
	// LoaderRows is the number of placeholder rows shown at an open frontier.
	LoaderRows = 4
)

// RowKind distinguishes row segmentations.
type RowKind uint8

const (
	// Discrete rows hold up to RowWidth code points at arbitrary distances.
	Discrete RowKind = iota
	// Aligned rows hold the known code points of one RowWidth block.
	Aligned
)

func (k RowKind) String() string {
	switch k {
	case Discrete:
		return "Discrete"
	case Aligned:
		return "Aligned"
	default:
		return fmt.Sprintf("RowKind(%d)", uint8(k))
	}
}

// Row is a non-empty run of known code points in ascending order.
type Row struct {
	Kind       RowKind
	CodePoints []uint32
}

// Range returns the half-open code point range covered by the row. An
// Aligned row covers its whole block.
func (r Row) Range() (lo, hi uint32) {
	if r.Kind == Aligned {
		base := blockOf(r.first()) * RowWidth
		return base, base + RowWidth
	}
	return r.first(), r.last() + 1
}

func (r Row) first() uint32 { return r.CodePoints[0] }

func (r Row) last() uint32 { return r.CodePoints[len(r.CodePoints)-1] }

func (r Row) short() bool { return r.Kind == Discrete && len(r.CodePoints) < RowWidth }

func blockOf(cp uint32) uint32 { return cp / RowWidth }

// segment splits sorted, unique code points into rows. Blocks holding at
// least AlignThreshold points become Aligned rows; the runs in between are
// packed into Discrete rows of RowWidth, leaving the short row at the start
// of a run when fromEnd is set and at its end otherwise.
func segment(points []uint32, fromEnd bool) []Row {
	var (
		rows []Row
		run  []uint32
	)

	flush := func() {
		rows = append(rows, pack(run, fromEnd)...)
		run = nil
	}

	for i := 0; i < len(points); {
		j := i + 1
		for j < len(points) && blockOf(points[j]) == blockOf(points[i]) {
			j++
		}
		if j-i >= AlignThreshold {
			flush()
			rows = append(rows, Row{Kind: Aligned, CodePoints: points[i:j:j]})
		} else {
			run = append(run, points[i:j]...)
		}
		i = j
	}
	flush()

	return rows
}

func pack(run []uint32, fromEnd bool) []Row {
	if len(run) == 0 {
		return nil
	}

	rows := make([]Row, 0, (len(run)+RowWidth-1)/RowWidth)
	start := 0
	if k := len(run) % RowWidth; fromEnd && k != 0 {
		rows = append(rows, Row{Kind: Discrete, CodePoints: run[:k:k]})
		start = k
	}
	for start < len(run) {
		end := min(start+RowWidth, len(run))
		rows = append(rows, Row{Kind: Discrete, CodePoints: run[start:end:end]})
		start = end
	}
	return rows
}

func flatten(rows []Row) []uint32 {
	var n int
	for _, r := range rows {
		n += len(r.CodePoints)
	}
	out := make([]uint32, 0, n)
	for _, r := range rows {
		out = append(out, r.CodePoints...)
	}
	return out
}
