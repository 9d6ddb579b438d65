package graph

import (
	"fmt"
	"strings"
)

// The three configuration errors the builder can surface. All are
// detected before any scheduling happens; a partial plan is never
// produced. Each carries a FormatStderr for CLI diagnostics.

type CyclicDependencyError struct {
	// Path is the full cycle in forward order, first node repeated at
	// the end: A → B → A becomes ["A", "B", "A"].
	Path []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency detected: %s", strings.Join(e.Path, " -> "))
}

func (e *CyclicDependencyError) FormatStderr() string {
	return fmt.Sprintf("error: cyclic dependency detected\ncycle: %s\n", strings.Join(e.Path, " -> "))
}

type DuplicateTaskIDError struct {
	ID string
}

func (e *DuplicateTaskIDError) Error() string {
	return fmt.Sprintf("duplicate task id %q", e.ID)
}

func (e *DuplicateTaskIDError) FormatStderr() string {
	return fmt.Sprintf("error: duplicate task id %q\n", e.ID)
}

// UnknownReferenceError reports a task referencing an input no task
// produces, or an explicit_after / requires_stable id that does not
// exist in the plan.
type UnknownReferenceError struct {
	TaskID string
	Field  string // "inputs", "explicit_after" or "requires_stable"
	Ref    string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("task %q: %s references unknown %s %q", e.TaskID, e.Field, referent(e.Field), e.Ref)
}

func (e *UnknownReferenceError) FormatStderr() string {
	return fmt.Sprintf("error: task %q: %s references unknown %s %q\n", e.TaskID, e.Field, referent(e.Field), e.Ref)
}

func referent(field string) string {
	if field == "inputs" {
		return "artifact"
	}
	return "task"
}
