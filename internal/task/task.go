// Package task defines the immutable unit-of-work record the planner
// operates on, its lifecycle states, and pairwise conflict detection.
package task

type Kind string

const (
	KindImplementation Kind = "implementation"
	KindRefactor       Kind = "refactor"
	KindAnalysis       Kind = "analysis"
	KindDocumentation  Kind = "documentation"
	KindVerification   Kind = "verification"
)

var validKinds = map[Kind]bool{
	KindImplementation: true,
	KindRefactor:       true,
	KindAnalysis:       true,
	KindDocumentation:  true,
	KindVerification:   true,
}

func ValidKind(k Kind) bool {
	return validKinds[k]
}

// Task is a declared unit of work. Records are created once per planning
// run and never mutated afterwards; lifecycle progress lives in the plan
// state, not here.
type Task struct {
	ID                string   `json:"id" yaml:"id"`
	EstimatedDuration float64  `json:"estimated_duration" yaml:"estimated_duration"`
	Inputs            []string `json:"inputs" yaml:"inputs"`
	Outputs           []string `json:"outputs" yaml:"outputs"`
	Touches           []string `json:"touches" yaml:"touches"`
	ExplicitAfter     []string `json:"explicit_after" yaml:"explicit_after"`
	RequiresStable    []string `json:"requires_stable" yaml:"requires_stable"`
	Kind              Kind     `json:"kind" yaml:"kind"`
}
