package schedule

import (
	"strings"
	"testing"

	"github.com/waveplan/waveplan/internal/task"
)

func TestInsertCheckpoints_AdjacentLayers(t *testing.T) {
	tasks := []task.Task{
		{ID: "core", EstimatedDuration: 4, Kind: task.KindImplementation},
		{ID: "migrate", EstimatedDuration: 2, RequiresStable: []string{"core"}, Kind: task.KindRefactor},
	}
	g := mustGraph(t, tasks)
	layers := Layers(g)

	checkpoints := InsertCheckpoints(layers, g)
	if len(checkpoints) != 1 {
		t.Fatalf("expected 1 checkpoint, got %v", checkpoints)
	}

	cp := checkpoints[0]
	if cp.GatingTask != "core" || cp.DependentTask != "migrate" {
		t.Errorf("expected core gating migrate, got %+v", cp)
	}
	if cp.AfterLayer != 0 {
		t.Errorf("expected barrier after layer 0, got %d", cp.AfterLayer)
	}
	if !strings.Contains(cp.Rationale, `"core"`) || !strings.Contains(cp.Rationale, "stable") {
		t.Errorf("expected rationale naming the gating task, got %q", cp.Rationale)
	}
	if !strings.Contains(cp.Rationale, string(task.KindRefactor)) {
		t.Errorf("expected rationale naming the dependent kind, got %q", cp.Rationale)
	}
}

func TestInsertCheckpoints_SkipsRedundantBarrier(t *testing.T) {
	// core → bridge → migrate serializes the layers already; migrate's
	// stability requirement on core spans two layers, so no extra
	// barrier is needed.
	tasks := []task.Task{
		{ID: "core", EstimatedDuration: 4, Outputs: []string{"core.go"}},
		{ID: "bridge", EstimatedDuration: 2, Inputs: []string{"core.go"}, Outputs: []string{"bridge.go"}},
		{ID: "migrate", EstimatedDuration: 2, Inputs: []string{"bridge.go"}, RequiresStable: []string{"core"}},
	}
	g := mustGraph(t, tasks)
	layers := Layers(g)
	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %v", layers)
	}

	checkpoints := InsertCheckpoints(layers, g)
	if len(checkpoints) != 0 {
		t.Errorf("expected no checkpoint across non-adjacent layers, got %v", checkpoints)
	}
}

func TestInsertCheckpoints_NoStabilityEdges(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1, Outputs: []string{"a.out"}},
		{ID: "b", EstimatedDuration: 1, Inputs: []string{"a.out"}},
	}
	g := mustGraph(t, tasks)

	checkpoints := InsertCheckpoints(Layers(g), g)
	if len(checkpoints) != 0 {
		t.Errorf("expected no checkpoints without stability requirements, got %v", checkpoints)
	}
}

func TestInsertCheckpoints_SortedAndDistinct(t *testing.T) {
	tasks := []task.Task{
		{ID: "a", EstimatedDuration: 1},
		{ID: "b", EstimatedDuration: 1},
		{ID: "z1", EstimatedDuration: 1, RequiresStable: []string{"a", "b"}},
		{ID: "z2", EstimatedDuration: 1, RequiresStable: []string{"a"}},
	}
	g := mustGraph(t, tasks)
	layers := Layers(g)

	checkpoints := InsertCheckpoints(layers, g)
	if len(checkpoints) != 3 {
		t.Fatalf("expected 3 checkpoints, got %v", checkpoints)
	}
	for i := 1; i < len(checkpoints); i++ {
		prev, cur := checkpoints[i-1], checkpoints[i]
		if prev.AfterLayer > cur.AfterLayer {
			t.Errorf("checkpoints out of order: %+v before %+v", prev, cur)
		}
		if prev == cur {
			t.Errorf("duplicate checkpoint %+v", cur)
		}
	}
}
