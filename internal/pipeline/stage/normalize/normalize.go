// Package normalize implements the NORMALIZE stage (spec section 4.3):
// coordinates are rounded to the epsilon grid, polylines are exploded into
// lines, degenerate lines are dropped, and block rotations are folded into
// [0, 360).
package normalize

import (
	"math"

	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run normalizes Extract's output.
func Run(in *entity.ExtractOutput) (*entity.NormalizeOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	out := &entity.NormalizeOutput{Counters: m.Counters}

	for _, e := range in.Entities {
		switch v := e.(type) {
		case entity.Line:
			line := roundLine(v)
			if line.Degenerate() {
				m.Counters["degenerate_lines_dropped"]++
				continue
			}
			out.Entities = append(out.Entities, line)
			m.Counters["lines_kept"]++

		case entity.Polyline:
			rounded := make([]geom.Point, len(v.Vertices))
			for i, p := range v.Vertices {
				rounded[i] = geom.RoundPoint(p)
			}
			v.Vertices = rounded
			for _, seg := range v.Explode() {
				if seg.Degenerate() {
					m.Counters["degenerate_lines_dropped"]++
					continue
				}
				out.Entities = append(out.Entities, entity.NewLine(v.Layer, seg.P1, seg.P2))
				m.Counters["lines_kept"]++
			}

		case entity.Block:
			out.Entities = append(out.Entities, normalizeBlock(v))
			m.Counters["blocks_kept"]++
		}
	}

	for _, b := range in.DoorBlocks {
		out.DoorBlocks = append(out.DoorBlocks, normalizeBlock(b))
	}
	for _, b := range in.WindowBlocks {
		out.WindowBlocks = append(out.WindowBlocks, normalizeBlock(b))
	}

	return out, m
}

func roundLine(l entity.Line) entity.Line {
	return entity.NewLine(l.Layer, geom.RoundPoint(l.P1), geom.RoundPoint(l.P2))
}

// normalizeBlock rounds the block's position and folds its rotation into
// [0, 360) so that LOGIC stages never have to reason about negative or
// multi-turn angles.
func normalizeBlock(b entity.Block) entity.Block {
	b.Position = geom.RoundPoint(b.Position)
	b.RotationDeg = math.Mod(b.RotationDeg, 360.0)
	if b.RotationDeg < 0 {
		b.RotationDeg += 360.0
	}
	return b
}
