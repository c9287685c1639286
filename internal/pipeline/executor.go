// Package pipeline wires the eleven stages together against a single
// entity.Bundle, in the fixed order spec section 4.1 names, persisting
// each completed stage's artifact and stopping at the first fatal error.
package pipeline

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/obslog"
	"github.com/arxos/geoplan/internal/pipeerr"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
	"github.com/arxos/geoplan/internal/pipeline/stage/dedup"
	"github.com/arxos/geoplan/internal/pipeline/stage/door"
	"github.com/arxos/geoplan/internal/pipeline/stage/extract"
	"github.com/arxos/geoplan/internal/pipeline/stage/layering"
	"github.com/arxos/geoplan/internal/pipeline/stage/logicb"
	"github.com/arxos/geoplan/internal/pipeline/stage/logicc"
	"github.com/arxos/geoplan/internal/pipeline/stage/logicd"
	"github.com/arxos/geoplan/internal/pipeline/stage/logice"
	"github.com/arxos/geoplan/internal/pipeline/stage/normalize"
	"github.com/arxos/geoplan/internal/pipeline/stage/placeholder"
	"github.com/arxos/geoplan/internal/pipeline/stage/walldetect"
	"github.com/arxos/geoplan/internal/sink"
)

const (
	stageExtract        = "EXTRACT"
	stageNormalize      = "NORMALIZE"
	stageCleanDedup     = "CLEAN_DEDUP"
	stageParallelNaive  = "PARALLEL_NAIVE"
	stageLogicB         = "LOGIC_B"
	stageLogicC         = "LOGIC_C"
	stageLogicD         = "LOGIC_D"
	stageLogicE         = "LOGIC_E"
	stageDoorAssignment = "DOOR_RECTANGLE_ASSIGNMENT"
	stageDoorBridge     = "DOOR_BRIDGE"
	stagePlaceholder    = "WALL_CANDIDATES_PLACEHOLDER"
)

// artifactNames maps each stage to the fixed name its artifact is
// persisted under (spec section 6, External Interfaces). EXTRACT and
// NORMALIZE have no fixed name in that list — they fall under the
// generic "per-step step_results" blobs — so orderedStages persists them
// under their stage name plus ".json".
var artifactNames = map[string]string{
	stageCleanDedup:     "canvas_data.json",
	stageLogicB:         "logic_b_pairs.json",
	stageLogicC:         "logic_c_pairs.json",
	stageLogicD:         "logic_d_rectangles.json",
	stageLogicE:         "logic_e_rectangles.json",
	stageDoorAssignment: "door_rectangle_assignments.json",
	stageDoorBridge:     "door_bridges.json",
	stagePlaceholder:    "wall_candidates_placeholder_results.json",
}

// wallCandidatePairsArtifact is PARALLEL_NAIVE's detector-half artifact
// name, spelled out since that stage persists two artifacts (layers and
// candidates) rather than the one artifactNames assumes for every other
// stage.
const wallCandidatePairsArtifact = "wall_candidate_pairs.json"

// parallelNaiveLayersArtifact holds PARALLEL_NAIVE's layering-half
// output. Spec section 6 doesn't give this a fixed name, so it persists
// as a per-step blob like EXTRACT and NORMALIZE.
const parallelNaiveLayersArtifact = "parallel_naive_layers.json"

// Executor runs the fixed stage sequence against a bundle.
type Executor struct {
	Sink   sink.ArtifactSink
	Logger *obslog.Logger
	Config config.AlgorithmConfig
}

// NewExecutor builds an Executor; a nil logger falls back to a no-op one.
func NewExecutor(s sink.ArtifactSink, logger *obslog.Logger, cfg config.AlgorithmConfig) *Executor {
	if logger == nil {
		logger = obslog.Noop()
	}
	return &Executor{Sink: s, Logger: logger, Config: cfg}
}

// Run executes all eleven stages against bundle, in order, persisting each
// completed stage's artifact and stopping at the first fatal error.
func (e *Executor) Run(ctx context.Context, jobID string, bundle entity.Bundle) (entity.Bundle, RunReport, error) {
	report := RunReport{JobID: jobID}
	log := e.Logger.WithJob(jobID)

	stages := e.orderedStages(ctx, &bundle)

	var runErr error
	failedAt := -1
	for i, st := range stages {
		if ctx.Err() != nil {
			report.Stages = append(report.Stages, StageReport{Stage: st.name, Status: StageSkipped, Error: ctx.Err().Error()})
			failedAt = i
			runErr = pipeerr.New(pipeerr.Cancelled, st.name, "context cancelled before stage start")
			break
		}

		artifacts, m, err := st.run()
		report.TotalDuration += m.DurationMS

		if err != nil {
			log.WithStage(st.name).Error("stage failed", zap.Error(err))
			report.Stages = append(report.Stages, StageReport{
				Stage: st.name, Status: StageFailed, DurationMS: m.DurationMS,
				Counters: m.Counters, Error: err.Error(),
			})
			failedAt = i
			runErr = err
			break
		}

		if persistErr := e.persistAll(ctx, jobID, artifacts); persistErr != nil {
			wrapped := pipeerr.Wrap(pipeerr.SinkUnavailable, st.name, "persisting stage artifact", persistErr)
			report.Stages = append(report.Stages, StageReport{
				Stage: st.name, Status: StageFailed, DurationMS: m.DurationMS,
				Counters: m.Counters, Error: wrapped.Error(),
			})
			failedAt = i
			runErr = wrapped
			break
		}

		log.WithStage(st.name).Info("stage completed", zap.Int64("duration_ms", m.DurationMS))
		report.Stages = append(report.Stages, StageReport{
			Stage: st.name, Status: StageCompleted, DurationMS: m.DurationMS, Counters: m.Counters,
		})
	}

	if failedAt >= 0 {
		for _, st := range stages[failedAt+1:] {
			report.Stages = append(report.Stages, StageReport{Stage: st.name, Status: StageSkipped})
		}
		report.FailedStage = stages[failedAt].name
	}

	return bundle, report, runErr
}

// namedArtifact pairs an artifact body with the exact sink name it must
// persist under, since a stage's in-bundle output and its spec section 6
// artifact name don't always coincide one-to-one (PARALLEL_NAIVE persists
// two artifacts from one stage run).
type namedArtifact struct {
	name string
	body any
}

// stageRunner is one stage bound to the bundle it will mutate: run()
// executes it and returns the artifacts it produced for persistence.
type stageRunner struct {
	name string
	run  func() ([]namedArtifact, metrics.Metrics, error)
}

// orderedStages returns the fixed stage sequence, each closure reading
// from and writing into bundle exactly once, per the bundle's
// append-only contract.
func (e *Executor) orderedStages(ctx context.Context, bundle *entity.Bundle) []stageRunner {
	return []stageRunner{
		{stageExtract, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m, err := extract.Run(bundle.InputDocument, bundle.SelectedLayers, e.Config)
			if err != nil {
				return nil, m, err
			}
			bundle.Extracted = out
			return []namedArtifact{{stageExtract + ".json", out}}, m, nil
		}},
		{stageNormalize, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := normalize.Run(bundle.Extracted)
			bundle.Normalized = out
			return []namedArtifact{{stageNormalize + ".json", out}}, m, nil
		}},
		{stageCleanDedup, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := dedup.Run(bundle.Normalized)
			bundle.Deduplicated = out
			return []namedArtifact{{artifactNames[stageCleanDedup], out}}, m, nil
		}},
		{stageParallelNaive, func() ([]namedArtifact, metrics.Metrics, error) {
			layered, layerMetrics, err := layering.Run(ctx, bundle.Deduplicated)
			if err != nil {
				return nil, layerMetrics, pipeerr.Wrap(pipeerr.CorruptUpstream, stageParallelNaive, "layer grouping failed", err)
			}
			bundle.Layered = layered

			candidates, detectMetrics, err := walldetect.Run(layered, e.Config)
			if err != nil {
				return nil, mergeMetrics(layerMetrics, detectMetrics), err
			}
			bundle.WallCandidates = candidates

			artifacts := []namedArtifact{
				{parallelNaiveLayersArtifact, layered},
				{wallCandidatePairsArtifact, candidates},
			}
			return artifacts, mergeMetrics(layerMetrics, detectMetrics), nil
		}},
		{stageLogicB, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := logicb.Run(bundle.WallCandidates)
			bundle.LogicB = out
			return []namedArtifact{{artifactNames[stageLogicB], out}}, m, nil
		}},
		{stageLogicC, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := logicc.Run(bundle.LogicB, bundle.WallCandidates, flatLines(bundle.Layered))
			bundle.LogicC = out
			return []namedArtifact{{artifactNames[stageLogicC], out}}, m, nil
		}},
		{stageLogicD, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := logicd.Run(bundle.LogicC, e.Config)
			bundle.LogicD = out
			return []namedArtifact{{artifactNames[stageLogicD], out}}, m, nil
		}},
		{stageLogicE, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := logice.Run(bundle.LogicD, e.Config)
			bundle.LogicE = out
			return []namedArtifact{{artifactNames[stageLogicE], out}}, m, nil
		}},
		{stageDoorAssignment, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := door.AssignRun(bundle.Deduplicated.DoorBlocks, bundle.LogicE, e.Config)
			bundle.DoorAssignments = out
			return []namedArtifact{{artifactNames[stageDoorAssignment], out}}, m, nil
		}},
		{stageDoorBridge, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := door.BridgeRun(bundle.DoorAssignments, bundle.LogicE, e.Config)
			bundle.DoorBridges = out
			return []namedArtifact{{artifactNames[stageDoorBridge], out}}, m, nil
		}},
		{stagePlaceholder, func() ([]namedArtifact, metrics.Metrics, error) {
			out, m := placeholder.Run(bundle.WallCandidates)
			bundle.Placeholder = out
			return []namedArtifact{{artifactNames[stagePlaceholder], out}}, m, nil
		}},
	}
}

// mergeMetrics combines two stage sub-steps' metrics into one, summing
// duration and counters, used where one named stage wraps multiple
// internal calls (PARALLEL_NAIVE runs layering then wall detection).
func mergeMetrics(a, b metrics.Metrics) metrics.Metrics {
	out := metrics.Metrics{DurationMS: a.DurationMS + b.DurationMS, Counters: make(map[string]int, len(a.Counters)+len(b.Counters))}
	for k, v := range a.Counters {
		out.Counters[k] = v
	}
	for k, v := range b.Counters {
		out.Counters[k] += v
	}
	return out
}

func flatLines(layered *entity.LayerOutput) []entity.Line {
	var lines []entity.Line
	for _, e := range layered.FlatEntities {
		if l, ok := e.(entity.Line); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// persistAll marshals every artifact a stage produced to JSON, keys sorted
// by Go's default map-key-sort-on-marshal behaviour, and hands each to the
// sink under its own fixed name.
func (e *Executor) persistAll(ctx context.Context, jobID string, artifacts []namedArtifact) error {
	if e.Sink == nil {
		return nil
	}
	for _, a := range artifacts {
		body, err := json.Marshal(a.body)
		if err != nil {
			return err
		}
		if err := e.Sink.Put(ctx, jobID, a.name, "application/json", body); err != nil {
			return err
		}
	}
	return nil
}
