// Package graph builds the dependency graph over a task set and rejects
// invalid configurations (duplicate ids, dangling references, cycles)
// before any scheduling happens.
package graph

import (
	"sort"

	"github.com/waveplan/waveplan/internal/task"
)

type EdgeReason string

const (
	ReasonDataDependency   EdgeReason = "data_dependency"
	ReasonExplicitAfter    EdgeReason = "explicit_after"
	ReasonStabilityBarrier EdgeReason = "stability_barrier"
)

// Edge is a directed dependency From → To: To may not start until From
// completes (or, for stability_barrier, until From is stable). Parallel
// edges between the same pair are deduplicated; Reasons keeps the union
// of labels for reporting.
type Edge struct {
	From    string       `json:"from" yaml:"from"`
	To      string       `json:"to" yaml:"to"`
	Reasons []EdgeReason `json:"reasons" yaml:"reasons"`
}

// Graph is the immutable dependency graph over one planning run.
type Graph struct {
	order []string
	tasks map[string]task.Task
	out   map[string]map[string]map[EdgeReason]bool
	in    map[string]map[string]map[EdgeReason]bool
}

// Order returns task ids in input order.
func (g *Graph) Order() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) Task(id string) (task.Task, bool) {
	t, ok := g.tasks[id]
	return t, ok
}

// Tasks returns the task records in input order.
func (g *Graph) Tasks() []task.Task {
	out := make([]task.Task, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.tasks[id])
	}
	return out
}

// Predecessors returns the ids this task depends on, sorted.
func (g *Graph) Predecessors(id string) []string {
	var preds []string
	for from := range g.in[id] {
		preds = append(preds, from)
	}
	sort.Strings(preds)
	return preds
}

// EdgesInto returns all dependency edges ending at id, sorted by origin.
func (g *Graph) EdgesInto(id string) []Edge {
	var edges []Edge
	for from, reasons := range g.in[id] {
		edges = append(edges, Edge{From: from, To: id, Reasons: sortedReasons(reasons)})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].From < edges[j].From })
	return edges
}

// Edges returns every edge in the graph, sorted by (from, to).
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for from, tos := range g.out {
		for to, reasons := range tos {
			edges = append(edges, Edge{From: from, To: to, Reasons: sortedReasons(reasons)})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// StabilityEdges returns the edges carrying a stability_barrier label,
// sorted by (from, to). The checkpoint inserter walks these.
func (g *Graph) StabilityEdges() []Edge {
	var edges []Edge
	for _, e := range g.Edges() {
		for _, r := range e.Reasons {
			if r == ReasonStabilityBarrier {
				edges = append(edges, e)
				break
			}
		}
	}
	return edges
}

func (g *Graph) addEdge(from, to string, reason EdgeReason) {
	if g.out[from] == nil {
		g.out[from] = make(map[string]map[EdgeReason]bool)
	}
	if g.out[from][to] == nil {
		g.out[from][to] = make(map[EdgeReason]bool)
	}
	g.out[from][to][reason] = true

	if g.in[to] == nil {
		g.in[to] = make(map[string]map[EdgeReason]bool)
	}
	if g.in[to][from] == nil {
		g.in[to][from] = make(map[EdgeReason]bool)
	}
	g.in[to][from][reason] = true
}

var reasonOrder = map[EdgeReason]int{
	ReasonDataDependency:   0,
	ReasonExplicitAfter:    1,
	ReasonStabilityBarrier: 2,
}

func sortedReasons(set map[EdgeReason]bool) []EdgeReason {
	reasons := make([]EdgeReason, 0, len(set))
	for r := range set {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasonOrder[reasons[i]] < reasonOrder[reasons[j]] })
	return reasons
}
