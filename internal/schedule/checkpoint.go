package schedule

import (
	"fmt"
	"sort"

	"github.com/waveplan/waveplan/internal/graph"
	"github.com/waveplan/waveplan/internal/task"
)

// InsertCheckpoints post-processes the layered schedule. A topological
// sort can only express "completed"; a stability_barrier edge A→B means
// B must additionally wait for an external "stable" signal on A. For
// every such edge where B sits in the layer immediately after A, a
// checkpoint barrier is emitted after A's layer. When an intervening
// layer already separates the pair, the dependency chain in between
// serializes them anyway and no redundant barrier is added.
func InsertCheckpoints(layers []Layer, g *graph.Graph) []Checkpoint {
	layerOf := make(map[string]int)
	for _, l := range layers {
		for _, id := range l.TaskIDs {
			layerOf[id] = l.Index
		}
	}

	seen := make(map[string]bool)
	var checkpoints []Checkpoint
	for _, e := range g.StabilityEdges() {
		gating, dependent := e.From, e.To
		if layerOf[dependent]-layerOf[gating] != 1 {
			continue
		}
		key := fmt.Sprintf("%d/%s/%s", layerOf[gating], gating, dependent)
		if seen[key] {
			continue
		}
		seen[key] = true

		dep, _ := g.Task(dependent)
		checkpoints = append(checkpoints, Checkpoint{
			AfterLayer:    layerOf[gating],
			GatingTask:    gating,
			DependentTask: dependent,
			Rationale:     rationale(gating, dep),
		})
	}

	sort.Slice(checkpoints, func(i, j int) bool {
		if checkpoints[i].AfterLayer != checkpoints[j].AfterLayer {
			return checkpoints[i].AfterLayer < checkpoints[j].AfterLayer
		}
		if checkpoints[i].GatingTask != checkpoints[j].GatingTask {
			return checkpoints[i].GatingTask < checkpoints[j].GatingTask
		}
		return checkpoints[i].DependentTask < checkpoints[j].DependentTask
	})
	return checkpoints
}

func rationale(gating string, dependent task.Task) string {
	kind := dependent.Kind
	if kind == "" {
		kind = "task"
	}
	return fmt.Sprintf("task %q must be stable (tests passing, no known defects) before %s %q proceeds", gating, kind, dependent.ID)
}
