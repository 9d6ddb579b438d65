package schedule

import (
	"sort"

	"github.com/waveplan/waveplan/internal/graph"
	"github.com/waveplan/waveplan/internal/task"
)

// Layers performs a layered topological sort. Each round, the candidate
// set is every unscheduled task whose predecessors all sit in earlier
// layers; candidates are admitted greedily in tie-break order (lower
// estimated_duration first, then lexicographic id) as long as they do
// not conflict with a task already placed in the layer. Tasks excluded
// by conflict become candidates again next round.
//
// The graph is acyclic, so every round places at least one task and the
// loop terminates. An entirely disconnected task set collapses into a
// single maximal layer.
func Layers(g *graph.Graph) []Layer {
	scheduled := make(map[string]bool, g.Len())
	remaining := g.Order()

	var layers []Layer
	for len(remaining) > 0 {
		candidates := make([]string, 0, len(remaining))
		var deferred []string
		for _, id := range remaining {
			if depsSatisfied(g, id, scheduled) {
				candidates = append(candidates, id)
			} else {
				deferred = append(deferred, id)
			}
		}

		sortCandidates(g, candidates)

		var placed []string
		for _, id := range candidates {
			if conflictsWithAny(g, id, placed) {
				deferred = append(deferred, id)
				continue
			}
			placed = append(placed, id)
		}

		layers = append(layers, Layer{
			Index:    len(layers),
			TaskIDs:  placed,
			Duration: maxDuration(g, placed),
		})
		for _, id := range placed {
			scheduled[id] = true
		}
		remaining = deferred
	}

	return layers
}

func depsSatisfied(g *graph.Graph, id string, scheduled map[string]bool) bool {
	for _, pred := range g.Predecessors(id) {
		if !scheduled[pred] {
			return false
		}
	}
	return true
}

// sortCandidates applies the deterministic tie-break: shorter tasks keep
// their slot when a conflict forces an exclusion.
func sortCandidates(g *graph.Graph, ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, _ := g.Task(ids[i])
		b, _ := g.Task(ids[j])
		if a.EstimatedDuration != b.EstimatedDuration {
			return a.EstimatedDuration < b.EstimatedDuration
		}
		return a.ID < b.ID
	})
}

func conflictsWithAny(g *graph.Graph, id string, placed []string) bool {
	t, _ := g.Task(id)
	for _, other := range placed {
		o, _ := g.Task(other)
		if task.Conflicts(t, o) {
			return true
		}
	}
	return false
}

func maxDuration(g *graph.Graph, ids []string) float64 {
	var max float64
	for _, id := range ids {
		t, _ := g.Task(id)
		if t.EstimatedDuration > max {
			max = t.EstimatedDuration
		}
	}
	return max
}
