package form

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidForm is wrapped by every error returned while building a Form.
var ErrInvalidForm = errors.New("invalid form")

// Rule names reported in ValidationError.Rule.
const (
	RuleRequired    = "required"
	RuleType        = "type"
	RuleOptions     = "options"
	RuleMin         = "min"
	RuleMax         = "max"
	RuleMinLength   = "minLength"
	RuleMaxLength   = "maxLength"
	RulePattern     = "pattern"
	RulePatternType = "patternType"
	RuleConstraint  = "constraint"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string // Field name
	Rule    string // Failed rule, one of the Rule constants
	Message string // Human-readable reason for failure
	Value   any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Message, e.Value)
}

// AggregateError represents multiple failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns the field failures carried by err, or nil when err
// is not a validation failure.
func ValidationErrors(err error) []*ValidationError {
	var aggr *AggregateError
	if !errors.As(err, &aggr) {
		return nil
	}
	out := make([]*ValidationError, 0, len(aggr.Errors))
	for _, e := range aggr.Errors {
		var ve *ValidationError
		if errors.As(e, &ve) {
			out = append(out, ve)
		}
	}
	return out
}
