// Package logice implements LOGIC_E (spec section 4.10): rectangles that
// share a direction, thickness, and lateral offset within tolerance are
// clustered into a "band", and each band's members are concatenated
// end-to-end along their shared axis wherever the longitudinal gap between
// consecutive members is within BandJoinGapMM, producing one merged
// rectangle per contiguous run.
package logice

import (
	"math"
	"sort"
	"strings"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run clusters rectangles into bands and merges each band's contiguous runs.
func Run(in *entity.RectangleOutput, cfg config.AlgorithmConfig) (*entity.RectangleOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	rects := in.Rectangles
	uf := newUnionFind(len(rects))
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if sameBand(rects[i], rects[j], cfg) {
				uf.union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	for i := range rects {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	var groupRoots []int
	for root := range groups {
		groupRoots = append(groupRoots, root)
	}
	sort.Ints(groupRoots)

	out := &entity.RectangleOutput{}
	for _, root := range groupRoots {
		members := make([]entity.TrimmedRectangle, len(groups[root]))
		for k, idx := range groups[root] {
			members[k] = rects[idx]
		}
		merged := mergeBand(members, cfg.BandJoinGapMM)
		out.Rectangles = append(out.Rectangles, merged...)
		m.Counters["bands_found"]++
		m.Counters["rectangles_merged"] += len(members) - len(merged)
	}

	return out, m
}

// sameBand reports whether two rectangles belong in the same band: close
// direction, close thickness, and close lateral offset between centroids.
func sameBand(a, b entity.TrimmedRectangle, cfg config.AlgorithmConfig) bool {
	dirA := canonicalDirection(a.Direction())
	dirB := canonicalDirection(b.Direction())
	dot := math.Min(1, math.Max(-1, dirA.Dot(dirB)))
	angleDiff := math.Acos(dot) * 180.0 / math.Pi
	if angleDiff > cfg.BandAngleToleranceDeg {
		return false
	}

	if math.Abs(a.Thickness()-b.Thickness()) > cfg.BandThicknessToleranceMM {
		return false
	}

	normal := dirA.Perp()
	offsetDiff := math.Abs(centroid(b.Corners()).Sub(centroid(a.Corners())).Dot(normal))
	return offsetDiff <= cfg.BandOffsetToleranceMM
}

// mergeBand sorts a band's members by longitudinal position and fuses
// consecutive runs whose gap is within joinGapMM, each run collapsing into
// a single rectangle spanning from the first member's start to the last
// member's end.
func mergeBand(members []entity.TrimmedRectangle, joinGapMM float64) []entity.TrimmedRectangle {
	if len(members) == 0 {
		return nil
	}

	ref := canonicalDirection(members[0].Direction())

	spans := make([]mergeSpan, len(members))
	for i, r := range members {
		lo, hi := projectRectangle(r, ref)
		spans[i] = mergeSpan{lo: lo, hi: hi, rect: r}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	var out []entity.TrimmedRectangle
	runStart := 0
	for i := 1; i <= len(spans); i++ {
		if i < len(spans) && spans[i].lo-spans[i-1].hi <= joinGapMM {
			continue
		}
		out = append(out, buildMergedRectangle(spans[runStart:i], ref))
		runStart = i
	}
	return out
}

func projectRectangle(r entity.TrimmedRectangle, dir geom.Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range r.Corners() {
		v := c.Dot(dir)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// mergeSpan is one band member's longitudinal projection interval, used to
// order and fuse a band's rectangles.
type mergeSpan struct {
	lo, hi float64
	rect   entity.TrimmedRectangle
}

// buildMergedRectangle fuses a contiguous run of same-band rectangles into
// one, running from the run's minimum longitudinal extent to its maximum,
// offset along each of the original two trimmed lines averaged across the
// run's members.
func buildMergedRectangle(run []mergeSpan, dir geom.Point) entity.TrimmedRectangle {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range run {
		lo = math.Min(lo, s.lo)
		hi = math.Max(hi, s.hi)
	}

	normal := dir.Perp()
	var offsetA, offsetB float64
	for _, s := range run {
		offsetA += s.rect.TrimmedSegmentA.P1.Dot(normal)
		offsetB += s.rect.TrimmedSegmentB.P1.Dot(normal)
	}
	offsetA /= float64(len(run))
	offsetB /= float64(len(run))

	segA := geom.NewSegment(
		dir.Scale(lo).Add(normal.Scale(offsetA)),
		dir.Scale(hi).Add(normal.Scale(offsetA)),
	)
	segB := geom.NewSegment(
		dir.Scale(lo).Add(normal.Scale(offsetB)),
		dir.Scale(hi).Add(normal.Scale(offsetB)),
	)

	bbox := geom.EmptyBBox()
	for _, p := range []geom.Point{segA.P1, segA.P2, segB.P1, segB.P2} {
		bbox.Expand(p)
	}

	return entity.TrimmedRectangle{
		TrimmedSegmentA:   segA,
		TrimmedSegmentB:   segB,
		BoundingRectangle: bbox,
		SourcePairID:      contributingPairIDs(run),
	}
}

// contributingPairIDs joins a merged run's source pair IDs, sorted
// lexicographically so the merged rectangle's identity never depends on
// the order rectangles happened to arrive in.
func contributingPairIDs(run []mergeSpan) string {
	ids := make([]string, len(run))
	for i, s := range run {
		ids[i] = s.rect.SourcePairID
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func canonicalDirection(d geom.Point) geom.Point {
	if d.X < 0 || (d.X == 0 && d.Y < 0) {
		return d.Scale(-1)
	}
	return d
}

func centroid(points []geom.Point) geom.Point {
	sum := geom.Point{}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1.0 / float64(len(points)))
}

// unionFind is a standard disjoint-set over rectangle indices, used to
// cluster rectangles into bands without materializing an explicit graph.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
