package task

import "fmt"

// ConflictReason explains why two tasks may not share a layer. Empty
// when the pair is independent.
type ConflictReason string

// Conflicts reports whether a and b may not run concurrently. It is a
// pure, symmetric function over declared metadata only: two tasks with
// disjoint touch sets, no input/output overlap, and no explicit ordering
// are independent no matter how related they look otherwise.
func Conflicts(a, b Task) bool {
	ok, _ := ConflictBetween(a, b)
	return ok
}

// ConflictBetween is Conflicts plus a human-readable reason for the
// report generator.
func ConflictBetween(a, b Task) (bool, ConflictReason) {
	if shared := intersect(a.Touches, b.Touches); len(shared) > 0 {
		return true, ConflictReason(fmt.Sprintf("both touch %q", shared[0]))
	}
	if shared := intersect(a.Outputs, b.Inputs); len(shared) > 0 {
		return true, ConflictReason(fmt.Sprintf("%s produces %q consumed by %s", a.ID, shared[0], b.ID))
	}
	if shared := intersect(b.Outputs, a.Inputs); len(shared) > 0 {
		return true, ConflictReason(fmt.Sprintf("%s produces %q consumed by %s", b.ID, shared[0], a.ID))
	}
	if containsString(a.ExplicitAfter, b.ID) {
		return true, ConflictReason(fmt.Sprintf("%s declares explicit_after %s", a.ID, b.ID))
	}
	if containsString(b.ExplicitAfter, a.ID) {
		return true, ConflictReason(fmt.Sprintf("%s declares explicit_after %s", b.ID, a.ID))
	}
	return false, ""
}

// intersect returns the common elements of a and b in a's order.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var shared []string
	for _, s := range a {
		if set[s] {
			shared = append(shared, s)
		}
	}
	return shared
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
