package form

import "github.com/aretw0/formlogic/pkg/constraint"

// FieldType selects the input widget and the type checks applied to a field.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypePassword FieldType = "password"
	TypeCheckbox FieldType = "checkbox"
	TypeSelect   FieldType = "select"
	TypeRadio    FieldType = "radio"
	TypeHidden   FieldType = "hidden"
	TypeHostname FieldType = "hostname"
	TypeIP       FieldType = "ip"
	TypeBinary   FieldType = "binary"
)

var fieldTypes = map[FieldType]bool{
	TypeText: true, TypeNumber: true, TypePassword: true, TypeCheckbox: true,
	TypeSelect: true, TypeRadio: true, TypeHidden: true, TypeHostname: true,
	TypeIP: true, TypeBinary: true,
}

// PatternType names a predefined value format.
type PatternType string

const (
	PatternNumeric     PatternType = "numeric"
	PatternHostname    PatternType = "hostname"
	PatternHostAddress PatternType = "hostAddress"
	PatternBinaryUnit  PatternType = "binaryUnit"
)

// FieldConfig declares a single form field.
type FieldConfig struct {
	// Name is the dotted path of the field value inside the form data.
	Name        string    `yaml:"name" json:"name" mapstructure:"name"`
	Type        FieldType `yaml:"type,omitempty" json:"type,omitempty" mapstructure:"type"`
	Label       string    `yaml:"label,omitempty" json:"label,omitempty" mapstructure:"label"`
	Hint        string    `yaml:"hint,omitempty" json:"hint,omitempty" mapstructure:"hint"`
	Placeholder string    `yaml:"placeholder,omitempty" json:"placeholder,omitempty" mapstructure:"placeholder"`
	Options     []Choice  `yaml:"options,omitempty" json:"options,omitempty" mapstructure:"options"`

	// Value is a default when it is a literal and a computed value otherwise.
	Value    constraint.Expression `yaml:"value,omitempty" json:"value,omitempty" mapstructure:"value"`
	Readonly constraint.Expression `yaml:"readonly,omitempty" json:"readonly,omitempty" mapstructure:"readonly"`
	Hidden   constraint.Expression `yaml:"hidden,omitempty" json:"hidden,omitempty" mapstructure:"hidden"`

	Validators Validators `yaml:"validators,omitempty" json:"validators,omitempty" mapstructure:"validators"`
}

// Choice is an option offered by select and radio fields.
type Choice struct {
	Label string `yaml:"label,omitempty" json:"label,omitempty" mapstructure:"label"`
	Value any    `yaml:"value" json:"value" mapstructure:"value"`
}

// Validators lists the rules checked by Form.Validate.
// Rules other than the required ones are skipped for empty values.
type Validators struct {
	Required    bool                  `yaml:"required,omitempty" json:"required,omitempty" mapstructure:"required"`
	RequiredIf  constraint.Expression `yaml:"requiredIf,omitempty" json:"requiredIf,omitempty" mapstructure:"requiredIf"`
	Min         *float64              `yaml:"min,omitempty" json:"min,omitempty" mapstructure:"min"`
	Max         *float64              `yaml:"max,omitempty" json:"max,omitempty" mapstructure:"max"`
	MinLength   *int                  `yaml:"minLength,omitempty" json:"minLength,omitempty" mapstructure:"minLength"`
	MaxLength   *int                  `yaml:"maxLength,omitempty" json:"maxLength,omitempty" mapstructure:"maxLength"`
	Pattern     string                `yaml:"pattern,omitempty" json:"pattern,omitempty" mapstructure:"pattern"`
	PatternType PatternType           `yaml:"patternType,omitempty" json:"patternType,omitempty" mapstructure:"patternType"`
	Constraint  *ConstraintValidator  `yaml:"constraint,omitempty" json:"constraint,omitempty" mapstructure:"constraint"`
}

// ConstraintValidator fails when Constraint evaluates falsy against the form data.
type ConstraintValidator struct {
	Constraint   constraint.Expression `yaml:"constraint" json:"constraint" mapstructure:"constraint"`
	ErrorMessage string                `yaml:"errorMessage,omitempty" json:"errorMessage,omitempty" mapstructure:"errorMessage"`
}

type roleExpr struct {
	role string
	expr constraint.Expression
}

// expressions returns every constraint expression attached to the field with its role.
func (f FieldConfig) expressions() []roleExpr {
	out := []roleExpr{
		{"value", f.Value},
		{"readonly", f.Readonly},
		{"hidden", f.Hidden},
		{"requiredIf", f.Validators.RequiredIf},
	}
	if f.Validators.Constraint != nil {
		out = append(out, roleExpr{"constraint", f.Validators.Constraint.Constraint})
	}
	return out
}

// kind returns the field type, defaulting to text.
func (f FieldConfig) kind() FieldType {
	if f.Type == "" {
		return TypeText
	}
	return f.Type
}
