// Package layering implements the PARALLEL_NAIVE stage (spec section
// 4.5): entities are grouped by layer and each layer's bounding box is
// computed, optionally in parallel, before being flattened back into a
// single deterministically-ordered slice for downstream stages.
package layering

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/geom"
	"github.com/arxos/geoplan/internal/pipeline/metrics"
)

// Run groups Dedup's kept entities by layer and computes per-layer bounds.
// Bbox computation runs one goroutine per layer (no concurrency limit is
// set on the errgroup) since each layer's bbox is independent of every
// other; the final flattening is strictly serial so entity order
// never depends on goroutine scheduling.
func Run(ctx context.Context, in *entity.DedupOutput) (*entity.LayerOutput, metrics.Metrics, error) {
	m := metrics.New()
	timer := metrics.StartTimer()
	defer func() { m.DurationMS = timer.Stop() }()

	grouped := make(map[string][]entity.Entity)
	var names []string
	for _, e := range in.Entities {
		layer := e.EntityLayer()
		if _, ok := grouped[layer]; !ok {
			names = append(names, layer)
		}
		grouped[layer] = append(grouped[layer], e)
	}
	sort.Strings(names)

	groups := make([]entity.LayerGroup, len(names))
	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			groups[i] = entity.LayerGroup{
				Name:     name,
				Entities: grouped[name],
				BBox:     layerBBox(grouped[name]),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, m, err
	}

	out := &entity.LayerOutput{Layers: groups}
	for _, group := range groups {
		out.FlatEntities = append(out.FlatEntities, group.Entities...)
		m.Counters["entities_in_"+group.Name] = len(group.Entities)
	}
	m.Counters["layer_count"] = len(groups)

	return out, m, nil
}

func layerBBox(entities []entity.Entity) geom.BBox {
	bbox := geom.EmptyBBox()
	for _, e := range entities {
		if line, ok := e.(entity.Line); ok {
			bbox.Expand(line.P1)
			bbox.Expand(line.P2)
		}
		if block, ok := e.(entity.Block); ok {
			bbox = bbox.Union(block.WorldBBox())
		}
	}
	return bbox
}
