// Package dedup implements the CLEAN_DEDUP stage (spec section 4.4):
// entities are content-hashed and deduplicated, and a canvas artifact is
// produced for the (out-of-scope) viewer: drawing bounds, per-layer kept
// lines, a deterministic per-layer display color, and summary statistics.
package dedup

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run deduplicates Normalize's output and builds the canvas artifact.
func Run(in *entity.NormalizeOutput) (*entity.DedupOutput, metrics.Metrics) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	out := &entity.DedupOutput{Counters: m.Counters}
	seen := make(map[entity.ID]struct{})

	for _, e := range in.Entities {
		id, kept := dedupOne(e, seen)
		if !kept {
			m.Counters["duplicates_dropped"]++
			continue
		}
		out.Entities = append(out.Entities, withID(e, id))
		m.Counters["entities_kept"]++
	}

	out.DoorBlocks = dedupBlocks(in.DoorBlocks, make(map[entity.ID]struct{}), m)
	out.WindowBlocks = dedupBlocks(in.WindowBlocks, make(map[entity.ID]struct{}), m)

	out.Canvas = buildCanvas(out.Entities)

	return out, m
}

func dedupOne(e entity.Entity, seen map[entity.ID]struct{}) (entity.ID, bool) {
	var id entity.ID
	switch v := e.(type) {
	case entity.Line:
		id = entity.HashLine(v.Layer, v.P1, v.P2)
	case entity.Block:
		id = entity.HashBlock(v.Layer, v.Name, v.Position, v.RotationDeg)
	default:
		return "", false
	}
	if _, dup := seen[id]; dup {
		return id, false
	}
	seen[id] = struct{}{}
	return id, true
}

func dedupBlocks(blocks []entity.Block, seen map[entity.ID]struct{}, m metrics.Metrics) []entity.Block {
	var out []entity.Block
	for _, b := range blocks {
		id := entity.HashBlock(b.Layer, b.Name, b.Position, b.RotationDeg)
		if _, dup := seen[id]; dup {
			m.Counters["duplicate_blocks_dropped"]++
			continue
		}
		seen[id] = struct{}{}
		b.ID = id
		out = append(out, b)
	}
	return out
}

func withID(e entity.Entity, id entity.ID) entity.Entity {
	switch v := e.(type) {
	case entity.Line:
		v.ID = id
		return v
	case entity.Block:
		v.ID = id
		return v
	default:
		return e
	}
}

// buildCanvas groups kept lines by layer, computing the drawing's overall
// bounds and a deterministic per-layer color from the layer name's FNV-1a
// hash (section 4.4's "stable viewer color" requirement).
func buildCanvas(entities []entity.Entity) entity.CanvasArtifact {
	bounds := geom.EmptyBBox()
	layers := make(map[string]entity.CanvasLayer)
	layerOrder := make([]string, 0)
	stats := make(map[string]int)

	for _, e := range entities {
		line, ok := e.(entity.Line)
		if !ok {
			continue
		}
		bounds.Expand(line.P1)
		bounds.Expand(line.P2)

		layer, exists := layers[line.Layer]
		if !exists {
			layer = entity.CanvasLayer{Color: layerColor(line.Layer), Visible: true}
			layerOrder = append(layerOrder, line.Layer)
		}
		layer.Lines = append(layer.Lines, entity.CanvasLine{
			ID: line.ID, Start: line.P1, End: line.P2, Length: line.Length,
		})
		layers[line.Layer] = layer
		stats["total_lines"]++
	}

	sort.Strings(layerOrder)
	stats["layer_count"] = len(layerOrder)

	return entity.CanvasArtifact{
		DrawingBounds: bounds,
		Layers:        layers,
		Statistics:    stats,
	}
}

// layerColor derives a deterministic HSL color string from a layer name so
// the same layer renders identically across runs without a maintained
// color table.
func layerColor(layer string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(layer))
	hue := h.Sum32() % 360
	return fmt.Sprintf("hsl(%d, 65%%, 45%%)", hue)
}
