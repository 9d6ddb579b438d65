package graph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/waveplan/waveplan/internal/task"
)

func TestBuild_DataDependencyEdges(t *testing.T) {
	tasks := []task.Task{
		{ID: "schema", EstimatedDuration: 2, Outputs: []string{"schema.sql"}},
		{ID: "api", EstimatedDuration: 4, Inputs: []string{"schema.sql"}},
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %v", len(edges), edges)
	}
	e := edges[0]
	if e.From != "schema" || e.To != "api" {
		t.Errorf("expected edge schema → api, got %s → %s", e.From, e.To)
	}
	if len(e.Reasons) != 1 || e.Reasons[0] != ReasonDataDependency {
		t.Errorf("expected data_dependency label, got %v", e.Reasons)
	}
}

func TestBuild_ExplicitAfterAndStabilityEdges(t *testing.T) {
	tasks := []task.Task{
		{ID: "core", EstimatedDuration: 4},
		{ID: "docs", EstimatedDuration: 1, ExplicitAfter: []string{"core"}},
		{ID: "migrate", EstimatedDuration: 2, RequiresStable: []string{"core"}},
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	edges := g.Edges()
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d: %v", len(edges), edges)
	}

	stability := g.StabilityEdges()
	if len(stability) != 1 {
		t.Fatalf("expected 1 stability edge, got %d", len(stability))
	}
	if stability[0].From != "core" || stability[0].To != "migrate" {
		t.Errorf("expected core → migrate, got %s → %s", stability[0].From, stability[0].To)
	}
}

func TestBuild_ParallelEdgesMergeLabels(t *testing.T) {
	// The same pair related by data flow, explicit ordering and a
	// stability requirement yields one edge with all three labels.
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, Outputs: []string{"a.out"}},
		{ID: "b", EstimatedDuration: 1, Inputs: []string{"a.out"},
			ExplicitAfter: []string{"a"}, RequiresStable: []string{"a"}},
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected edges to merge into 1, got %d: %v", len(edges), edges)
	}
	want := []EdgeReason{ReasonDataDependency, ReasonExplicitAfter, ReasonStabilityBarrier}
	if !reflect.DeepEqual(edges[0].Reasons, want) {
		t.Errorf("expected reasons %v, got %v", want, edges[0].Reasons)
	}
}

func TestBuild_DuplicateTaskID(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1},
		{ID: "a", EstimatedDuration: 2},
	}

	_, err := Build(tasks)
	var dup *DuplicateTaskIDError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTaskIDError, got %v", err)
	}
	if dup.ID != "a" {
		t.Errorf("expected duplicate id 'a', got %q", dup.ID)
	}
}

func TestBuild_UnknownInputArtifact(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, Inputs: []string{"never-produced.bin"}},
	}

	_, err := Build(tasks)
	var unknown *UnknownReferenceError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownReferenceError, got %v", err)
	}
	if unknown.TaskID != "a" || unknown.Field != "inputs" || unknown.Ref != "never-produced.bin" {
		t.Errorf("unexpected error detail: %+v", unknown)
	}
}

func TestBuild_UnknownExplicitAfter(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, ExplicitAfter: []string{"ghost"}},
	}

	_, err := Build(tasks)
	var unknown *UnknownReferenceError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownReferenceError, got %v", err)
	}
	if unknown.Field != "explicit_after" || unknown.Ref != "ghost" {
		t.Errorf("unexpected error detail: %+v", unknown)
	}
}

func TestBuild_UnknownRequiresStable(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, RequiresStable: []string{"ghost"}},
	}

	_, err := Build(tasks)
	var unknown *UnknownReferenceError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownReferenceError, got %v", err)
	}
	if unknown.Field != "requires_stable" {
		t.Errorf("expected field requires_stable, got %q", unknown.Field)
	}
}

func TestBuild_CycleReportsFullPath(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, ExplicitAfter: []string{"c"}},
		{ID: "b", EstimatedDuration: 1, ExplicitAfter: []string{"a"}},
		{ID: "c", EstimatedDuration: 1, ExplicitAfter: []string{"b"}},
	}

	_, err := Build(tasks)
	var cyc *CyclicDependencyError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CyclicDependencyError, got %v", err)
	}

	// Full cycle: first node repeated at the end, every hop a real edge.
	if len(cyc.Path) != 4 {
		t.Fatalf("expected path of 4 nodes, got %v", cyc.Path)
	}
	if cyc.Path[0] != cyc.Path[len(cyc.Path)-1] {
		t.Errorf("expected path to close on its first node, got %v", cyc.Path)
	}
	seen := map[string]bool{}
	for _, id := range cyc.Path[:len(cyc.Path)-1] {
		if seen[id] {
			t.Errorf("node %s repeated mid-path: %v", id, cyc.Path)
		}
		seen[id] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Errorf("expected %s in cycle path %v", want, cyc.Path)
		}
	}
}

func TestBuild_SelfReference(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, ExplicitAfter: []string{"a"}},
	}

	_, err := Build(tasks)
	var cyc *CyclicDependencyError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CyclicDependencyError for self-reference, got %v", err)
	}
	if !reflect.DeepEqual(cyc.Path, []string{"a", "a"}) {
		t.Errorf("expected path [a a], got %v", cyc.Path)
	}
}

func TestBuild_SelfConsumedOutput(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, Inputs: []string{"a.out"}, Outputs: []string{"a.out"}},
	}

	_, err := Build(tasks)
	var cyc *CyclicDependencyError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CyclicDependencyError for self-consumed output, got %v", err)
	}
}

func TestBuild_MultipleProducers(t *testing.T) {
	// Two tasks producing the same artifact both become dependencies of
	// the consumer.
	tasks := []task.Task{
		{ID: "gen1", EstimatedDuration: 1, Outputs: []string{"data.json"}},
		{ID: "gen2", EstimatedDuration: 1, Outputs: []string{"data.json"}},
		{ID: "use", EstimatedDuration: 1, Inputs: []string{"data.json"}},
	}

	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	preds := g.Predecessors("use")
	if !reflect.DeepEqual(preds, []string{"gen1", "gen2"}) {
		t.Errorf("expected predecessors [gen1 gen2], got %v", preds)
	}
}

func TestBuild_EmptyTaskList(t *testing.T) {
	g, err := Build(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if g.Len() != 0 || len(g.Edges()) != 0 {
		t.Errorf("expected empty graph, got %d nodes %d edges", g.Len(), len(g.Edges()))
	}
}
