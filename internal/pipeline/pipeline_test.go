package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/obslog"
	"github.com/arxos/geoplan/internal/sink"
)

func runDocument(t *testing.T, document string, layers []string) (entity.Bundle, RunReport) {
	t.Helper()
	e := NewExecutor(sink.NewMemorySink(), obslog.Noop(), config.DefaultAlgorithmConfig())
	bundle := entity.NewBundle([]byte(document), layers)
	out, report, err := e.Run(context.Background(), "e2e", bundle)
	require.NoError(t, err)
	return out, report
}

// TestE1SinglePairClean covers spec scenario E1: two parallel, fully
// overlapping lines 100mm apart collapse into one wall rectangle that
// survives every LOGIC stage untouched.
func TestE1SinglePairClean(t *testing.T) {
	doc := `{"layers": {"WALLS": {"entities": [
		{"type": "LINE", "start": {"x": 0, "y": 0}, "end": {"x": 1000, "y": 0}},
		{"type": "LINE", "start": {"x": 0, "y": 100}, "end": {"x": 1000, "y": 100}}
	]}}}`
	bundle, _ := runDocument(t, doc, []string{"WALLS"})

	require.Len(t, bundle.WallCandidates.Pairs, 1)
	pair := bundle.WallCandidates.Pairs[0]
	assert.InDelta(t, 100.0, pair.PerpendicularDistance, 1e-6)
	assert.InDelta(t, 100.0, pair.OverlapPercentage, 1e-6)
	assert.InDelta(t, 0.0, pair.AngleDifferenceDeg, 1e-6)

	require.Len(t, bundle.LogicE.Rectangles, 1)
	rect := bundle.LogicE.Rectangles[0]
	assert.InDelta(t, 1000.0, rect.TrimmedSegmentA.Length(), 1e-6)
	assert.InDelta(t, 100.0, rect.Thickness(), 1e-6)
}

// TestE2RejectedByDistance covers E2: lines 10mm apart are closer than
// MinDistanceMM (20mm) and never form a candidate pair.
func TestE2RejectedByDistance(t *testing.T) {
	doc := `{"layers": {"WALLS": {"entities": [
		{"type": "LINE", "start": {"x": 0, "y": 0}, "end": {"x": 1000, "y": 0}},
		{"type": "LINE", "start": {"x": 0, "y": 10}, "end": {"x": 1000, "y": 10}}
	]}}}`
	bundle, _ := runDocument(t, doc, []string{"WALLS"})
	assert.Empty(t, bundle.WallCandidates.Pairs)
}

// TestE3RejectedByOverlap covers E3: a 20% longitudinal overlap is below
// MinOverlapPercentage (60%).
func TestE3RejectedByOverlap(t *testing.T) {
	doc := `{"layers": {"WALLS": {"entities": [
		{"type": "LINE", "start": {"x": 0, "y": 0}, "end": {"x": 1000, "y": 0}},
		{"type": "LINE", "start": {"x": 800, "y": 100}, "end": {"x": 1800, "y": 100}}
	]}}}`
	bundle, _ := runDocument(t, doc, []string{"WALLS"})
	assert.Empty(t, bundle.WallCandidates.Pairs)
}

// TestE4InterveningLineIsPrunedByLogicC covers E4: LOGIC_B still trims the
// rectangle from E1's pair, but LOGIC_C removes it once a third line
// crosses the rectangle's interior.
func TestE4InterveningLineIsPrunedByLogicC(t *testing.T) {
	doc := `{"layers": {"WALLS": {"entities": [
		{"type": "LINE", "start": {"x": 0, "y": 0}, "end": {"x": 1000, "y": 0}},
		{"type": "LINE", "start": {"x": 0, "y": 100}, "end": {"x": 1000, "y": 100}},
		{"type": "LINE", "start": {"x": 100, "y": 50}, "end": {"x": 900, "y": 50}}
	]}}}`
	bundle, _ := runDocument(t, doc, []string{"WALLS"})

	require.Len(t, bundle.LogicB.Rectangles, 1)
	assert.Empty(t, bundle.LogicC.Rectangles)
}

// TestE5BandMerge covers E5: two collinear LOGIC_D rectangles on the same
// band with a 5mm gap merge into one rectangle spanning both.
func TestE5BandMerge(t *testing.T) {
	doc := `{"layers": {"WALLS": {"entities": [
		{"type": "LINE", "start": {"x": 0, "y": 0}, "end": {"x": 500, "y": 0}},
		{"type": "LINE", "start": {"x": 0, "y": 100}, "end": {"x": 500, "y": 100}},
		{"type": "LINE", "start": {"x": 505, "y": 0}, "end": {"x": 1000, "y": 0}},
		{"type": "LINE", "start": {"x": 505, "y": 100}, "end": {"x": 1000, "y": 100}}
	]}}}`
	bundle, _ := runDocument(t, doc, []string{"WALLS"})

	require.Len(t, bundle.LogicE.Rectangles, 1)
	merged := bundle.LogicE.Rectangles[0]
	assert.InDelta(t, 1000.0, merged.TrimmedSegmentA.Length(), 1e-6)
}

// TestE6DoorBridge covers E6: a door block spanning a wall's opening gets
// assigned to the covering rectangle and produces a bridge padded by
// BridgeEndCapMM on each side.
func TestE6DoorBridge(t *testing.T) {
	doc := `{"layers": {
		"WALLS": {"entities": [
			{"type": "LINE", "start": {"x": 0, "y": 0}, "end": {"x": 2000, "y": 0}},
			{"type": "LINE", "start": {"x": 0, "y": 100}, "end": {"x": 2000, "y": 100}}
		]},
		"DOORS": {"entities": [
			{"type": "BLOCK", "name": "door1", "position": {"x": 1000, "y": 50}, "Rotation": 0,
			 "BoundingBox": {"MinPoint": {"X": -100, "Y": -100}, "MaxPoint": {"X": 100, "Y": 100}}}
		]}
	}}`
	bundle, _ := runDocument(t, doc, []string{"WALLS", "DOORS"})

	require.Len(t, bundle.DoorAssignments.Assignments, 1)
	assignment := bundle.DoorAssignments.Assignments[0]
	require.NotNil(t, assignment.WallRectIndex)

	require.Len(t, bundle.DoorBridges.Bridges, 1)
	bridge := bundle.DoorBridges.Bridges[0]
	require.Len(t, bridge.Bridges, 1)
	bbox := bridge.Bridges[0].BridgeRectangle
	assert.InDelta(t, 890.0, bbox.MinX, 1e-6)
	assert.InDelta(t, 1110.0, bbox.MaxX, 1e-6)
	assert.InDelta(t, 0.0, bbox.MinY, 1e-6)
	assert.InDelta(t, 100.0, bbox.MaxY, 1e-6)
}
