package graph

import (
	"sort"

	"github.com/waveplan/waveplan/internal/task"
)

// Build constructs the dependency graph. Edge rules, applied for every
// ordered pair (A, B):
//
//  1. outputs(A) ∩ inputs(B) ≠ ∅  → A→B data_dependency
//  2. B.explicit_after contains A  → A→B explicit_after
//  3. B.requires_stable contains A → A→B stability_barrier
//
// Build fails with DuplicateTaskIDError, UnknownReferenceError or
// CyclicDependencyError; on error no graph is returned.
func Build(tasks []task.Task) (*Graph, error) {
	g := &Graph{
		order: make([]string, 0, len(tasks)),
		tasks: make(map[string]task.Task, len(tasks)),
		out:   make(map[string]map[string]map[EdgeReason]bool),
		in:    make(map[string]map[string]map[EdgeReason]bool),
	}

	producers := make(map[string][]string) // artifact → producing task ids
	for _, t := range tasks {
		if _, dup := g.tasks[t.ID]; dup {
			return nil, &DuplicateTaskIDError{ID: t.ID}
		}
		g.tasks[t.ID] = t
		g.order = append(g.order, t.ID)
		for _, out := range t.Outputs {
			producers[out] = append(producers[out], t.ID)
		}
	}

	for _, id := range g.order {
		t := g.tasks[id]

		for _, in := range t.Inputs {
			sources, ok := producers[in]
			if !ok {
				return nil, &UnknownReferenceError{TaskID: id, Field: "inputs", Ref: in}
			}
			for _, from := range sources {
				if from == id {
					// A task consuming its own output is a self-loop.
					return nil, &CyclicDependencyError{Path: []string{id, id}}
				}
				g.addEdge(from, id, ReasonDataDependency)
			}
		}

		for _, from := range t.ExplicitAfter {
			if _, ok := g.tasks[from]; !ok {
				return nil, &UnknownReferenceError{TaskID: id, Field: "explicit_after", Ref: from}
			}
			if from == id {
				return nil, &CyclicDependencyError{Path: []string{id, id}}
			}
			g.addEdge(from, id, ReasonExplicitAfter)
		}

		for _, from := range t.RequiresStable {
			if _, ok := g.tasks[from]; !ok {
				return nil, &UnknownReferenceError{TaskID: id, Field: "requires_stable", Ref: from}
			}
			if from == id {
				return nil, &CyclicDependencyError{Path: []string{id, id}}
			}
			g.addEdge(from, id, ReasonStabilityBarrier)
		}
	}

	if cycle := findCycle(g); cycle != nil {
		return nil, &CyclicDependencyError{Path: cycle}
	}

	return g, nil
}

// findCycle runs a depth-first traversal with a recursion-stack color
// set and reconstructs the full cycle path for diagnostics.
func findCycle(g *Graph) []string {
	const (
		white = 0 // unvisited
		gray  = 1 // on current path
		black = 2 // finished
	)

	color := make(map[string]int, len(g.order))
	parent := make(map[string]string, len(g.order))

	var cycle []string

	var dfs func(node string) bool
	dfs = func(node string) bool {
		color[node] = gray
		for _, next := range sortedKeys(g.out[node]) {
			if color[next] == gray {
				// Reconstruct path from next back to node, then reverse.
				cycle = []string{next}
				current := node
				for current != next {
					cycle = append(cycle, current)
					current = parent[current]
				}
				cycle = append(cycle, next)
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return true
			}
			if color[next] == white {
				parent[next] = node
				if dfs(next) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for _, id := range g.order {
		if color[id] == white {
			if dfs(id) {
				return cycle
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]map[EdgeReason]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic traversal keeps the reported cycle path stable
	// across runs.
	sort.Strings(keys)
	return keys
}
