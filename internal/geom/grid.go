package geom

// Grid is a uniform spatial hash keyed by cell coordinate, used by the
// wall-candidate detector and LOGIC_C's corridor scan to cut their
// reference O(n^2) algorithms down to expected O(n*k) without changing
// results — both stages still evaluate every predicate in full over
// whatever the grid returns, so indexing is a pure accelerator.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]int
}

type cellKey struct{ cx, cy int64 }

// NewGrid builds an empty grid with the given cell size in millimetres.
// Callers typically size cells to roughly MaxDistanceMM so that any pair
// within range falls into the same or an adjacent cell.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{cellSize: cellSize, cells: make(map[cellKey][]int)}
}

func (g *Grid) keyFor(p Point) cellKey {
	return cellKey{
		cx: int64(floorDiv(p.X, g.cellSize)),
		cy: int64(floorDiv(p.Y, g.cellSize)),
	}
}

func floorDiv(v, size float64) float64 {
	q := v / size
	if q < 0 {
		return q - 1
	}
	return q
}

// Insert indexes item index idx under the cell containing midpoint.
func (g *Grid) Insert(idx int, midpoint Point) {
	k := g.keyFor(midpoint)
	g.cells[k] = append(g.cells[k], idx)
}

// InsertBBox indexes item idx under every cell box overlaps. Use this
// instead of Insert when an item's own extent matters to later bbox
// queries — a single representative point (e.g. a long segment's
// midpoint) can sit arbitrarily far from a matching item whose overlap
// with it is concentrated near one end.
func (g *Grid) InsertBBox(idx int, box BBox) {
	minK := g.keyFor(Point{X: box.MinX, Y: box.MinY})
	maxK := g.keyFor(Point{X: box.MaxX, Y: box.MaxY})
	for cx := minK.cx; cx <= maxK.cx; cx++ {
		for cy := minK.cy; cy <= maxK.cy; cy++ {
			k := cellKey{cx: cx, cy: cy}
			g.cells[k] = append(g.cells[k], idx)
		}
	}
}

// Query returns every indexed item whose cell is within the 3x3
// neighborhood centered on midpoint, deduplicated against nothing (callers
// own dedup/ordering — this only narrows the candidate set).
func (g *Grid) Query(midpoint Point) []int {
	center := g.keyFor(midpoint)
	var out []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			k := cellKey{cx: center.cx + dx, cy: center.cy + dy}
			out = append(out, g.cells[k]...)
		}
	}
	return out
}

// QueryBBox returns every indexed item whose cell overlaps the box,
// expanded by one cell in each direction to cover the grid's quantization.
func (g *Grid) QueryBBox(b BBox) []int {
	minK := g.keyFor(Point{X: b.MinX, Y: b.MinY})
	maxK := g.keyFor(Point{X: b.MaxX, Y: b.MaxY})
	var out []int
	for cx := minK.cx - 1; cx <= maxK.cx+1; cx++ {
		for cy := minK.cy - 1; cy <= maxK.cy+1; cy++ {
			out = append(out, g.cells[cellKey{cx: cx, cy: cy}]...)
		}
	}
	return out
}
