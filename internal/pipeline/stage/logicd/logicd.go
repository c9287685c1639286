// Package logicd implements LOGIC_D (spec section 4.9): containment
// pruning. When one rectangle's quadrilateral is fully contained within
// another's (within ContainmentToleranceMM), the smaller rectangle is
// redundant and is dropped; ties are broken by area then SourcePairID so
// the result never depends on slice order.
package logicd

import (
	"sort"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run prunes rectangles contained within a larger rectangle.
func Run(in *entity.RectangleOutput, cfg config.AlgorithmConfig) (*entity.RectangleOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	rects := append([]entity.TrimmedRectangle(nil), in.Rectangles...)
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Area() != rects[j].Area() {
			return rects[i].Area() > rects[j].Area()
		}
		return rects[i].SourcePairID < rects[j].SourcePairID
	})

	dropped := make([]bool, len(rects))
	for i := range rects {
		if dropped[i] {
			continue
		}
		for j := range rects {
			if i == j || dropped[j] {
				continue
			}
			if containedIn(rects[j], rects[i], cfg.ContainmentToleranceMM) {
				dropped[j] = true
				m.Counters["rectangles_pruned_contained"]++
			}
		}
	}

	out := &entity.RectangleOutput{}
	for i, rect := range rects {
		if dropped[i] {
			continue
		}
		out.Rectangles = append(out.Rectangles, rect)
	}
	m.Counters["rectangles_kept"] = len(out.Rectangles)

	return out, m
}

// containedIn reports whether inner's quadrilateral lies entirely within
// outer's, outer's boundary dilated by tol to absorb rounding noise.
func containedIn(inner, outer entity.TrimmedRectangle, tol float64) bool {
	if outer.Area() < inner.Area() {
		return false
	}
	dilated := dilateQuad(outer.Corners(), tol)
	for _, c := range inner.Corners() {
		if !geom.PointInPolygon(c, dilated) {
			return false
		}
	}
	return true
}

// dilateQuad pushes each corner outward from the quad's centroid by tol,
// a close approximation to a uniform Minkowski expansion for the
// near-rectangular quads this pipeline produces.
func dilateQuad(corners []geom.Point, tol float64) []geom.Point {
	centroid := geom.Point{}
	for _, c := range corners {
		centroid = centroid.Add(c)
	}
	centroid = centroid.Scale(1.0 / float64(len(corners)))

	out := make([]geom.Point, len(corners))
	for i, c := range corners {
		dir := c.Sub(centroid)
		length := dir.Length()
		if length < geom.Epsilon {
			out[i] = c
			continue
		}
		out[i] = c.Add(dir.Scale(tol / length))
	}
	return out
}
