// Package walldetect implements the wall-candidate detector (spec section
// 4.6): every pair of lines is tested against three predicates
// (parallelism, perpendicular distance, longitudinal overlap), accelerated
// with a uniform grid keyed by each line's own bounding box (not just its
// midpoint, since two long, partially-overlapping lines can have distant
// midpoints yet still pass every predicate). The grid only narrows which
// pairs get tested; it never changes which pairs pass.
package walldetect

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeerr"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

const stageName = "PARALLEL_NAIVE"

// pairNamespace is a fixed UUID namespace so pair_id is reproducible given
// the same pair of source line IDs across runs (resolves the "is pair_id
// stable" open question: it is, by construction).
var pairNamespace = uuid.MustParse("6f0a6f1e-6d6b-4b7a-9f0a-1d2c3b4a5e6f")

// Run scans every line across every layer group for wall-candidate pairs.
func Run(in *entity.LayerOutput, cfg config.AlgorithmConfig) (*entity.WallCandidateOutput, metrics.Metrics, error) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	var lines []entity.Line
	for _, e := range in.FlatEntities {
		if l, ok := e.(entity.Line); ok {
			lines = append(lines, l)
		}
	}
	if len(lines) > cfg.MaxLineCount {
		return nil, m, pipeerr.New(pipeerr.OversizedInput, stageName,
			"line count exceeds the configured safety cap")
	}

	cosTolerance := math.Cos(cfg.AngularToleranceDeg * math.Pi / 180.0)

	grid := geom.NewGrid(cfg.MaxDistanceMM)
	bboxes := make([]geom.BBox, len(lines))
	for i, l := range lines {
		box := geom.BBoxOfPoints(l.P1, l.P2)
		bboxes[i] = box
		grid.InsertBBox(i, box)
	}

	out := &entity.WallCandidateOutput{}
	seenPairs := make(map[[2]int]struct{})

	for i, a := range lines {
		// Query with i's own bbox expanded by the maximum qualifying
		// perpendicular distance: any line further than that in every
		// direction cannot pass the distance predicate regardless of
		// where along either line the overlap sits.
		search := bboxes[i].Pad(cfg.MaxDistanceMM)
		for _, j := range grid.QueryBBox(search) {
			if j <= i {
				continue
			}
			key := [2]int{i, j}
			if _, done := seenPairs[key]; done {
				continue
			}
			seenPairs[key] = struct{}{}

			pair, ok := evaluatePair(a, lines[j], cosTolerance, cfg)
			m.Counters["pairs_tested"]++
			if !ok {
				continue
			}
			out.Pairs = append(out.Pairs, pair)
			m.Counters["pairs_accepted"]++
		}
	}

	sort.Slice(out.Pairs, func(i, j int) bool {
		return out.Pairs[i].PairID < out.Pairs[j].PairID
	})

	return out, m, nil
}

// evaluatePair applies the three predicates in order, short-circuiting on
// the first failure since each is progressively more expensive.
func evaluatePair(a, b entity.Line, cosTolerance float64, cfg config.AlgorithmConfig) (entity.CandidatePair, bool) {
	segA, segB := a.Segment(), b.Segment()
	if segA.Degenerate() || segB.Degenerate() {
		return entity.CandidatePair{}, false
	}

	dirA, dirB := segA.Direction(), segB.Direction()
	dot := math.Abs(dirA.Dot(dirB))
	if dot < cosTolerance {
		return entity.CandidatePair{}, false
	}
	angleDiff := math.Acos(math.Min(1, math.Max(-1, dot))) * 180.0 / math.Pi

	perpDist := perpendicularDistance(segA, segB, dirA)
	if perpDist < cfg.MinDistanceMM || perpDist > cfg.MaxDistanceMM {
		return entity.CandidatePair{}, false
	}

	overlapPct := longitudinalOverlapPercentage(segA, segB, dirA)
	if overlapPct < cfg.MinOverlapPercentage {
		return entity.CandidatePair{}, false
	}

	bbox := geom.EmptyBBox()
	bbox.Expand(segA.P1)
	bbox.Expand(segA.P2)
	bbox.Expand(segB.P1)
	bbox.Expand(segB.P2)

	pairID := derivePairID(a.ID, b.ID)

	return entity.CandidatePair{
		PairID:                pairID,
		Line1:                 a,
		Line2:                 b,
		PerpendicularDistance: perpDist,
		OverlapPercentage:     overlapPct,
		AngleDifferenceDeg:    angleDiff,
		AverageLength:         (a.Length + b.Length) / 2,
		BoundingRectangle:     bbox,
	}, true
}

// perpendicularDistance projects b's midpoint onto a's normal.
func perpendicularDistance(a, b geom.Segment, dirA geom.Point) float64 {
	normal := dirA.Perp()
	midB := b.P1.Add(b.P2).Scale(0.5)
	rel := midB.Sub(a.P1)
	return math.Abs(rel.Dot(normal))
}

// longitudinalOverlapPercentage projects both segments onto a's direction
// and expresses their overlap as a percentage of the shorter segment's
// projected length.
func longitudinalOverlapPercentage(a, b geom.Segment, dirA geom.Point) float64 {
	loA, hiA := a.ProjectInterval(dirA)
	loB, hiB := b.ProjectInterval(dirA)

	lo := math.Max(loA, loB)
	hi := math.Min(hiA, hiB)
	overlap := math.Max(0, hi-lo)

	lenA := hiA - loA
	lenB := hiB - loB
	shorter := math.Min(lenA, lenB)
	if shorter < geom.Epsilon {
		return 0
	}
	return (overlap / shorter) * 100.0
}

func derivePairID(id1, id2 entity.ID) string {
	a, b := string(id1), string(id2)
	if b < a {
		a, b = b, a
	}
	return uuid.NewSHA1(pairNamespace, []byte(a+"|"+b)).String()
}
