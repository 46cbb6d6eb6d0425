package form

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/formlogic/pkg/constraint"
)

// Validate checks the effective data (see Apply) against every visible field.
// Hidden fields are skipped. Failures are reported in field order as *ValidationError
// values inside an *AggregateError.
func (f *Form) Validate(data constraint.Map) error {
	effective := f.Apply(data)

	var errs []error
	for _, field := range f.fields {
		state := f.resolve(field, effective)
		if state.Hidden {
			continue
		}
		errs = append(errs, f.validateField(field, state, effective)...)
	}

	if len(errs) > 0 {
		f.logger.Debug("form validation failed", "errors", len(errs))
		return &AggregateError{Errors: errs}
	}
	f.logger.Debug("form validation passed", "fields", len(f.fields))
	return nil
}

func (f *Form) validateField(field FieldConfig, state FieldState, data constraint.Map) []error {
	fail := func(rule, format string, args ...any) error {
		return &ValidationError{
			Field:   field.Name,
			Rule:    rule,
			Message: fmt.Sprintf(format, args...),
			Value:   state.Value,
		}
	}

	if !state.Present || constraint.IsEmpty(state.Value) {
		if state.Required {
			return []error{&ValidationError{Field: field.Name, Rule: RuleRequired, Message: "is required"}}
		}
		return nil
	}

	value := state.Value
	v := field.Validators
	var errs []error

	if err := checkType(field, value, fail); err != nil {
		return []error{err}
	}

	if v.Min != nil || v.Max != nil {
		n := constraint.ToNumber(value)
		switch {
		case math.IsNaN(n):
			errs = append(errs, fail(RuleType, "must be a number"))
		case v.Min != nil && n < *v.Min:
			errs = append(errs, fail(RuleMin, "must be at least %s", constraint.ToString(*v.Min)))
		case v.Max != nil && n > *v.Max:
			errs = append(errs, fail(RuleMax, "must be at most %s", constraint.ToString(*v.Max)))
		}
	}

	if v.MinLength != nil && constraint.Length(value) < *v.MinLength {
		errs = append(errs, fail(RuleMinLength, "must have at least %d characters", *v.MinLength))
	}
	if v.MaxLength != nil && constraint.Length(value) > *v.MaxLength {
		errs = append(errs, fail(RuleMaxLength, "must have at most %d characters", *v.MaxLength))
	}

	if re, ok := f.patterns[field.Name]; ok && !re.MatchString(constraint.ToString(value)) {
		errs = append(errs, fail(RulePattern, "must match %s", v.Pattern))
	}
	if match, ok := patternTypes[v.PatternType]; ok && !match(constraint.ToString(value)) {
		errs = append(errs, fail(RulePatternType, "must be a valid %s", v.PatternType))
	}

	if c := v.Constraint; c != nil && !c.Constraint.Bool(data, true) {
		msg := c.ErrorMessage
		if msg == "" {
			msg = "does not satisfy " + constraint.String(c.Constraint.Node)
		}
		errs = append(errs, fail(RuleConstraint, "%s", msg))
	}

	return errs
}

func checkType(field FieldConfig, value any, fail func(rule, format string, args ...any) error) error {
	s := constraint.ToString(value)
	switch field.kind() {
	case TypeNumber:
		if math.IsNaN(constraint.ToNumber(value)) {
			return fail(RuleType, "must be a number")
		}
	case TypeCheckbox:
		if _, ok := value.(bool); !ok {
			return fail(RuleType, "must be true or false")
		}
	case TypeSelect, TypeRadio:
		if len(field.Options) == 0 {
			return nil
		}
		labels := make([]string, len(field.Options))
		for i, opt := range field.Options {
			if constraint.Equal(opt.Value, value) {
				return nil
			}
			labels[i] = constraint.FormatLiteral(opt.Value)
		}
		return fail(RuleOptions, "must be one of %s", strings.Join(labels, ", "))
	case TypeHostname:
		if !isHostname(s) {
			return fail(RuleType, "must be a valid hostname")
		}
	case TypeIP:
		if !isIP(s) {
			return fail(RuleType, "must be a valid IP address")
		}
	case TypeBinary:
		if !isBinaryUnit(s) {
			return fail(RuleType, "must be a size such as 512MiB")
		}
	}
	return nil
}
