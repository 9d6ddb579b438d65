package task

import "testing"

func TestConflicts_SharedTouches(t *testing.T) {
	a := Task{ID: "a", Touches: []string{"shared.md", "a.go"}}
	b := Task{ID: "b", Touches: []string{"shared.md", "b.go"}}

	if !Conflicts(a, b) {
		t.Error("expected conflict on shared touched file")
	}
	if !Conflicts(b, a) {
		t.Error("expected conflict to be symmetric")
	}
}

func TestConflicts_OutputConsumedAsInput(t *testing.T) {
	producer := Task{ID: "producer", Outputs: []string{"schema.sql"}}
	consumer := Task{ID: "consumer", Inputs: []string{"schema.sql"}}

	if !Conflicts(producer, consumer) {
		t.Error("expected conflict when one task consumes the other's output")
	}
	if !Conflicts(consumer, producer) {
		t.Error("expected conflict regardless of argument order")
	}
}

func TestConflicts_ExplicitAfter(t *testing.T) {
	first := Task{ID: "first"}
	second := Task{ID: "second", ExplicitAfter: []string{"first"}}

	if !Conflicts(first, second) {
		t.Error("expected conflict from explicit_after ordering")
	}
	if !Conflicts(second, first) {
		t.Error("expected conflict to be symmetric")
	}
}

func TestConflicts_IndependentTasks(t *testing.T) {
	a := Task{
		ID:      "a",
		Inputs:  []string{"x.proto"},
		Outputs: []string{"x.pb.go"},
		Touches: []string{"x.pb.go"},
	}
	b := Task{
		ID:      "b",
		Inputs:  []string{"y.proto"},
		Outputs: []string{"y.pb.go"},
		Touches: []string{"y.pb.go"},
	}

	if Conflicts(a, b) {
		t.Error("expected no conflict for tasks with disjoint declared metadata")
	}
}

func TestConflicts_EmptyMetadata(t *testing.T) {
	a := Task{ID: "a"}
	b := Task{ID: "b"}

	if Conflicts(a, b) {
		t.Error("two tasks with no declared metadata are independent")
	}
}

func TestConflictBetween_Reason(t *testing.T) {
	a := Task{ID: "a", Touches: []string{"shared.md"}}
	b := Task{ID: "b", Touches: []string{"shared.md"}}

	ok, reason := ConflictBetween(a, b)
	if !ok {
		t.Fatal("expected conflict")
	}
	if reason == "" {
		t.Error("expected a non-empty conflict reason")
	}

	ok, reason = ConflictBetween(Task{ID: "a"}, Task{ID: "b"})
	if ok {
		t.Fatal("expected no conflict")
	}
	if reason != "" {
		t.Errorf("expected empty reason for independent pair, got %q", reason)
	}
}
