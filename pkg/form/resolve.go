package form

import "github.com/aretw0/formlogic/pkg/constraint"

// FieldState is the resolved view of a field for a data object.
type FieldState struct {
	Name     string
	Type     FieldType
	Hidden   bool
	Readonly bool
	Required bool
	// Computed is set when the value is derived from other fields.
	Computed bool
	// Value is the effective value after defaults and computed values are applied.
	Value any
	// Present reports whether Value was found in the effective data.
	Present bool
}

// Resolve evaluates every field against data, in declaration order.
// Constraints see the effective data, i.e. data after Apply.
func (f *Form) Resolve(data constraint.Map) []FieldState {
	effective := f.Apply(data)
	states := make([]FieldState, len(f.fields))
	for i, field := range f.fields {
		states[i] = f.resolve(field, effective)
	}
	return states
}

func (f *Form) resolve(field FieldConfig, effective constraint.Map) FieldState {
	value, present := effective.Get(field.Name)
	computed := field.Value.Computed()
	return FieldState{
		Name:     field.Name,
		Type:     field.kind(),
		Hidden:   field.kind() == TypeHidden || field.Hidden.Bool(effective, false),
		Readonly: computed || field.Readonly.Bool(effective, false),
		Required: field.Validators.Required || field.Validators.RequiredIf.Bool(effective, false),
		Computed: computed,
		Value:    value,
		Present:  present,
	}
}

// Apply returns a copy of data with defaults filled in for absent fields and computed
// values written to their paths. Fields are processed in order, so a computed value
// may build on fields declared before it. data is not modified.
func (f *Form) Apply(data constraint.Map) constraint.Map {
	out := data.Clone()
	for _, field := range f.fields {
		switch {
		case field.Value.Computed():
			out.Set(field.Name, field.Value.Eval(out))
		case field.Value.IsZero():
		default:
			if _, ok := out.Get(field.Name); !ok {
				out.Set(field.Name, field.Value.Eval(out))
			}
		}
	}
	return out
}
