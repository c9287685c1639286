// Package door implements the DOOR_RECTANGLE_ASSIGNMENT and DOOR_BRIDGE
// stages (spec sections 4.11-4.12): each door block is snapped onto the
// nearest qualifying wall rectangle, then a bridge rectangle is built to
// fill the opening the door leaves in that wall.
package door

import (
	"math"
	"sort"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// AssignRun snaps each door block onto the nearest wall rectangle whose
// longitudinal span covers the door's center and whose perpendicular
// distance is within DoorSnapToleranceMM.
func AssignRun(doorBlocks []entity.Block, walls *entity.RectangleOutput, cfg config.AlgorithmConfig) (*entity.DoorAssignmentOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	out := &entity.DoorAssignmentOutput{Counters: m.Counters}

	for _, door := range doorBlocks {
		bbox := door.WorldBBox()
		center := bbox.Center()

		bestIdx := -1
		bestDist := math.Inf(1)
		for i, rect := range walls.Rectangles {
			dist, ok := qualifies(center, rect, cfg.DoorSnapToleranceMM)
			if !ok {
				continue
			}
			if dist < bestDist {
				bestDist = dist
				bestIdx = i
			}
		}

		assignment := entity.DoorAssignment{DoorBlockID: door.ID, SnappedBBox: bbox}
		if bestIdx >= 0 {
			idx := bestIdx
			assignment.WallRectIndex = &idx
			assignment.Orientation = orientationOf(bbox, walls.Rectangles[idx])
			m.Counters["doors_assigned"]++
		} else {
			m.Counters["doors_unassigned"]++
		}
		out.Assignments = append(out.Assignments, assignment)
	}

	sort.Slice(out.Assignments, func(i, j int) bool {
		return out.Assignments[i].DoorBlockID < out.Assignments[j].DoorBlockID
	})

	return out, m
}

// qualifies reports whether center's longitudinal projection falls within
// rect's extent and its perpendicular distance to rect's centerline is
// within tolerance, returning that distance.
func qualifies(center geom.Point, rect entity.TrimmedRectangle, toleranceMM float64) (float64, bool) {
	dir := rect.Direction()
	lo, hi := rect.TrimmedSegmentA.ProjectInterval(dir)
	proj := center.Dot(dir)
	if proj < lo || proj > hi {
		return 0, false
	}

	mid := midline(rect)
	normal := dir.Perp()
	dist := math.Abs(center.Sub(mid.P1).Dot(normal))
	if dist > toleranceMM {
		return 0, false
	}
	return dist, true
}

// orientationOf reports AlongA when the door's long axis (the longer side
// of its snapped bbox) runs within 45 degrees of segment A's direction,
// else AlongB.
func orientationOf(bbox geom.BBox, rect entity.TrimmedRectangle) entity.Orientation {
	longAxis := geom.Point{X: 1}
	if bbox.Height() > bbox.Width() {
		longAxis = geom.Point{Y: 1}
	}
	if math.Abs(longAxis.Dot(rect.TrimmedSegmentA.Direction())) >= math.Sqrt2/2 {
		return entity.AlongA
	}
	return entity.AlongB
}

// midline returns the segment running along the centerline between a
// rectangle's two trimmed segments.
func midline(rect entity.TrimmedRectangle) geom.Segment {
	return geom.NewSegment(
		rect.TrimmedSegmentA.P1.Add(rect.TrimmedSegmentB.P1).Scale(0.5),
		rect.TrimmedSegmentA.P2.Add(rect.TrimmedSegmentB.P2).Scale(0.5),
	)
}
