// Package logicc implements LOGIC_C (spec section 4.8): a trimmed
// rectangle is dropped if another line's midpoint falls inside its
// quadrilateral, since that means geometry other than the wall's own pair
// is sitting between the two trimmed segments (the pair doesn't actually
// bound a clean wall corridor). A line's midpoint can only fall inside a
// rectangle's quadrilateral if that midpoint also falls inside the
// rectangle's axis-aligned BoundingRectangle, so a geom.Grid keyed by each
// line's own bbox narrows the scan to that bounding box before the exact
// point-in-polygon test runs.
package logicc

import (
	"math"

	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run prunes rectangles whose corridor contains intervening line geometry.
// pairsByID resolves each rectangle's SourcePairID back to the candidate
// pair it was trimmed from, so the pair's own two lines can be excluded
// from the intervening-geometry scan.
func Run(in *entity.RectangleOutput, candidates *entity.WallCandidateOutput, allLines []entity.Line) (*entity.RectangleOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	pairsByID := make(map[string]entity.CandidatePair, len(candidates.Pairs))
	for _, p := range candidates.Pairs {
		pairsByID[p.PairID] = p
	}

	grid := buildLineGrid(allLines)

	out := &entity.RectangleOutput{}

	for _, rect := range in.Rectangles {
		pair := pairsByID[rect.SourcePairID]
		corners := rect.Corners()
		if hasInterveningGeometry(pair, allLines, corners, rect.BoundingRectangle, grid) {
			m.Counters["rectangles_pruned_intervening"]++
			continue
		}
		out.Rectangles = append(out.Rectangles, rect)
		m.Counters["rectangles_kept"]++
	}

	return out, m
}

// buildLineGrid indexes every line under its own bounding box, cell size
// scaled to the overall drawing extent so the grid holds roughly one line
// per cell regardless of the document's physical scale.
func buildLineGrid(lines []entity.Line) *geom.Grid {
	union := geom.EmptyBBox()
	for _, l := range lines {
		union.Expand(l.P1)
		union.Expand(l.P2)
	}

	cellSize := math.Max(union.Width(), union.Height()) / math.Sqrt(float64(len(lines))+1)
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}

	grid := geom.NewGrid(cellSize)
	for i, l := range lines {
		grid.InsertBBox(i, geom.BBoxOfPoints(l.P1, l.P2))
	}
	return grid
}

// hasInterveningGeometry reports whether any line other than the pair's own
// two source lines has a midpoint falling strictly inside the rectangle's
// quadrilateral. grid.QueryBBox(bounds) narrows the candidates to lines
// whose own bbox overlaps the rectangle's bounding box; any line whose
// midpoint lies inside the quadrilateral necessarily satisfies that.
func hasInterveningGeometry(own entity.CandidatePair, lines []entity.Line, corners []geom.Point, bounds geom.BBox, grid *geom.Grid) bool {
	checked := make(map[int]struct{})
	for _, idx := range grid.QueryBBox(bounds) {
		if _, done := checked[idx]; done {
			continue
		}
		checked[idx] = struct{}{}

		l := lines[idx]
		if l.ID == own.Line1.ID || l.ID == own.Line2.ID {
			continue
		}
		mid := l.P1.Add(l.P2).Scale(0.5)
		if geom.PointInPolygon(mid, corners) {
			return true
		}
	}
	return false
}
