package task

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusStable    Status = "stable"
)

var validStatuses = map[Status]bool{
	StatusPending:   true,
	StatusScheduled: true,
	StatusRunning:   true,
	StatusCompleted: true,
	StatusFailed:    true,
	StatusStable:    true,
}

// Terminal means the executor reports nothing further for the task.
// Completed is not terminal: the caller may still assert stability.
var terminalStatuses = map[Status]bool{
	StatusFailed: true,
	StatusStable: true,
}

// Lifecycle transitions: pending → scheduled → running → completed|failed,
// then completed → stable on an external signal only. The planner assigns
// scheduled when it seals a plan; everything after that is reported by the
// executor collaborator.
var validTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusScheduled: true,
	},
	StatusScheduled: {
		StatusRunning: true,
	},
	StatusRunning: {
		StatusCompleted: true,
		StatusFailed:    true,
	},
	StatusCompleted: {
		StatusStable: true,
	},
}

func ValidStatus(s Status) bool {
	return validStatuses[s]
}

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", fmt.Errorf("unknown status %q (want pending, scheduled, running, completed, failed, or stable)", s)
	}
	return st, nil
}

func IsTerminal(s Status) bool {
	return terminalStatuses[s]
}

// Settled reports whether the task needs no further execution: it either
// finished (completed or stable) or failed.
func Settled(s Status) bool {
	return s == StatusCompleted || s == StatusStable || s == StatusFailed
}

func ValidateTransition(from, to Status) error {
	if !validStatuses[from] {
		return fmt.Errorf("unknown status %q", from)
	}
	if !validStatuses[to] {
		return fmt.Errorf("unknown status %q", to)
	}
	if IsTerminal(from) {
		return fmt.Errorf("cannot transition from terminal status %q", from)
	}
	if !validTransitions[from][to] {
		return fmt.Errorf("invalid task transition: %q → %q", from, to)
	}
	return nil
}
