// Package placeholder implements WALL_CANDIDATES_PLACEHOLDER (spec section
// 4.13): the final stage re-exposes the wall-candidate detector's raw
// output verbatim, ahead of the richer wall-candidate consumer the
// pipeline doesn't yet own.
package placeholder

import (
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run copies the wall-candidate detector's output through unchanged.
func Run(in *entity.WallCandidateOutput) (*entity.WallCandidateOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	out := &entity.WallCandidateOutput{Pairs: append([]entity.CandidatePair(nil), in.Pairs...)}
	m.Counters["pairs_passed_through"] = len(out.Pairs)

	return out, m
}
