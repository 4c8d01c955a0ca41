package vlist

// CellKind distinguishes layout cells.
type CellKind uint8

const (
	// CellCodePoint shows a known code point.
	CellCodePoint CellKind = iota
	// CellEmpty is an unoccupied slot of an Aligned row.
	CellEmpty
	// CellLoading is a placeholder at an open frontier.
	CellLoading
)

// Direction tells on which side of the frontier a loading cell sits.
type Direction uint8

const (
	Before Direction = iota
	After
)

// Cell is one slot of a layout row.
//
// Loading cells carry the code point next to the frontier (low-1 before it,
// high after it) and an Offset that makes them unique: -63..0 before and
// 0..63 after.
type Cell struct {
	Kind      CellKind
	CodePoint uint32
	Offset    int
	Direction Direction
}

// Justify is the horizontal alignment of a row.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
)

// LayoutRow is a renderable row.
type LayoutRow struct {
	// Key is the persistent row key. Loader rows use the keys next to the
	// list rows.
	Key     int
	Kind    RowKind
	Loading bool
	Justify Justify
	Cells   []Cell
}

// View is the projection of a List computed by Layout.
type View struct {
	Rows            []LayoutRow
	HasLowFrontier  bool
	HasHighFrontier bool
	// CurrentRow is the index in Rows of the row holding the current code
	// point, or of the first row after it.
	CurrentRow int
}

// Layout projects l into rows of cells for rendering, locating current.
//
// Open frontiers get LoaderRows rows of loading cells. The first list row
// is end-justified when it is a short Discrete row, more rows follow and
// the low frontier is still open, so backward growth fills it from the
// right.
func Layout(l List, current uint32) View {
	v := View{
		HasLowFrontier:  l.HasLowFrontier(),
		HasHighFrontier: l.HasHighFrontier(),
	}
	v.Rows = make([]LayoutRow, 0, len(l.rows)+2*LoaderRows)

	if v.HasLowFrontier {
		for i := range LoaderRows {
			v.Rows = append(v.Rows, loaderRow(l.offset-LoaderRows+i, l.low-1, Before, i*RowWidth-(LoaderRows*RowWidth-1)))
		}
	}

	first := len(v.Rows)
	v.CurrentRow = -1
	for i, row := range l.rows {
		lr := layoutRow(l.offset+i, row)
		if i == 0 && row.short() && len(l.rows) > 1 && v.HasLowFrontier {
			lr.Justify = JustifyEnd
		}
		if _, hi := row.Range(); v.CurrentRow < 0 && hi > current {
			v.CurrentRow = len(v.Rows)
		}
		v.Rows = append(v.Rows, lr)
	}

	if v.HasHighFrontier {
		for i := range LoaderRows {
			v.Rows = append(v.Rows, loaderRow(l.offset+len(l.rows)+i, l.high, After, i*RowWidth))
		}
	}

	if v.CurrentRow < 0 {
		switch {
		case v.HasHighFrontier:
			v.CurrentRow = first + len(l.rows)
		case len(v.Rows) > 0:
			v.CurrentRow = len(v.Rows) - 1
		default:
			v.CurrentRow = 0
		}
	}

	return v
}

func layoutRow(key int, row Row) LayoutRow {
	lr := LayoutRow{Key: key, Kind: row.Kind}

	if row.Kind == Aligned {
		base, _ := row.Range()
		lr.Cells = make([]Cell, RowWidth)
		for j := range lr.Cells {
			lr.Cells[j] = Cell{Kind: CellEmpty, CodePoint: base + uint32(j)}
		}
		for _, cp := range row.CodePoints {
			lr.Cells[cp-base] = Cell{Kind: CellCodePoint, CodePoint: cp}
		}
		return lr
	}

	lr.Cells = make([]Cell, len(row.CodePoints))
	for j, cp := range row.CodePoints {
		lr.Cells[j] = Cell{Kind: CellCodePoint, CodePoint: cp}
	}
	return lr
}

func loaderRow(key int, cp uint32, dir Direction, offset int) LayoutRow {
	lr := LayoutRow{Key: key, Kind: Discrete, Loading: true, Cells: make([]Cell, RowWidth)}
	for j := range lr.Cells {
		lr.Cells[j] = Cell{Kind: CellLoading, CodePoint: cp, Offset: offset + j, Direction: dir}
	}
	return lr
}
