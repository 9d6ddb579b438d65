package task

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	FieldPath string
	Message   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.FieldPath, e.Message)
}

// ValidationErrors accumulates field-level problems so a caller sees
// everything wrong with the input at once instead of fixing one field
// per run.
type ValidationErrors struct {
	Errors []ValidationError
}

func (ve *ValidationErrors) Add(fieldPath, message string) {
	ve.Errors = append(ve.Errors, ValidationError{FieldPath: fieldPath, Message: message})
}

func (ve *ValidationErrors) HasErrors() bool {
	return ve != nil && len(ve.Errors) > 0
}

func (ve *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

func (ve *ValidationErrors) FormatStderr() string {
	var sb strings.Builder
	for _, e := range ve.Errors {
		fmt.Fprintf(&sb, "error: %s: %s\n", e.FieldPath, e.Message)
	}
	return sb.String()
}

// ValidateTasks checks field-level constraints on each task record.
// Cross-task problems (duplicate ids, dangling references, cycles) are
// the graph builder's job and surface as typed errors there.
func ValidateTasks(tasks []Task) *ValidationErrors {
	errs := &ValidationErrors{}

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.ID != "" {
			prefix = fmt.Sprintf("tasks[%d] (%s)", i, t.ID)
		}

		if t.ID == "" {
			errs.Add(prefix+".id", "required field is missing")
		}
		if t.EstimatedDuration <= 0 {
			errs.Add(prefix+".estimated_duration", fmt.Sprintf("must be greater than 0, got %v", t.EstimatedDuration))
		}
		if t.Kind != "" && !ValidKind(t.Kind) {
			errs.Add(prefix+".kind", fmt.Sprintf("unknown kind %q", t.Kind))
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
