package form

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"regexp"

	"github.com/aretw0/formlogic/internal/logging"
	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Form is an ordered, validated set of fields. It is immutable and safe for
// concurrent use once built.
type Form struct {
	fields   []FieldConfig
	index    map[string]int
	patterns map[string]*regexp.Regexp
	logger   *slog.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used to report validation outcomes at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// New builds a Form from fields, in order.
// It rejects unnamed or duplicate fields, unknown types and pattern types,
// malformed constraints and patterns that do not compile.
func New(fields []FieldConfig, opts ...Option) (*Form, error) {
	f := &Form{
		fields:   make([]FieldConfig, len(fields)),
		index:    make(map[string]int, len(fields)),
		patterns: make(map[string]*regexp.Regexp),
		logger:   logging.NewNop(),
	}
	copy(f.fields, fields)
	for _, opt := range opts {
		opt(f)
	}

	var errs []error
	for i, field := range f.fields {
		if field.Name == "" {
			errs = append(errs, fmt.Errorf("field %d: name is required", i))
			continue
		}
		if _, dup := f.index[field.Name]; dup {
			errs = append(errs, fmt.Errorf("field %q: duplicate name", field.Name))
			continue
		}
		f.index[field.Name] = i

		if !fieldTypes[field.kind()] {
			errs = append(errs, fmt.Errorf("field %q: unknown type %q", field.Name, field.Type))
		}
		if pt := field.Validators.PatternType; pt != "" && patternTypes[pt] == nil {
			errs = append(errs, fmt.Errorf("field %q: unknown pattern type %q", field.Name, pt))
		}
		if p := field.Validators.Pattern; p != "" {
			re, err := regexp.Compile("^(?:" + p + ")$")
			if err != nil {
				errs = append(errs, fmt.Errorf("field %q: pattern: %w", field.Name, err))
			} else {
				f.patterns[field.Name] = re
			}
		}
		for _, re := range field.expressions() {
			if !re.expr.Computed() {
				continue
			}
			if err := constraint.Check(re.expr.Node); err != nil {
				errs = append(errs, fmt.Errorf("field %q: %s: %w", field.Name, re.role, err))
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, &AggregateError{Errors: errs})
	}
	return f, nil
}

type document struct {
	Fields []FieldConfig `yaml:"fields"`
}

// Load reads a YAML document of the form
//
//	fields:
//	  - name: auth.type
//	    type: select
//	    ...
//
// Unknown keys are rejected.
func Load(r io.Reader, opts ...Option) (*Form, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return New(doc.Fields, opts...)
}

var expressionType = reflect.TypeOf(constraint.Expression{})

// expressionHook turns raw decoded values into constraint expressions.
func expressionHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != expressionType {
		return data, nil
	}
	n, err := constraint.Parse(data)
	if err != nil {
		return nil, err
	}
	return constraint.Expression{Node: n}, nil
}

// Decode builds a Form from generic field maps, such as a JSON payload decoded
// into []map[string]any. Unknown keys are rejected.
func Decode(raw []map[string]any, opts ...Option) (*Form, error) {
	var fields []FieldConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  expressionHook,
		ErrorUnused: true,
		Result:      &fields,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return New(fields, opts...)
}

// Fields returns the field configurations in declaration order.
func (f *Form) Fields() []FieldConfig {
	out := make([]FieldConfig, len(f.fields))
	copy(out, f.fields)
	return out
}

// Field returns the configuration of the named field.
func (f *Form) Field(name string) (FieldConfig, bool) {
	i, ok := f.index[name]
	if !ok {
		return FieldConfig{}, false
	}
	return f.fields[i], true
}
