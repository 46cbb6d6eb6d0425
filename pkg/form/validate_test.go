package form_test

import (
	"testing"

	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/aretw0/formlogic/pkg/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failure struct {
	field, rule string
}

func failures(err error) []failure {
	var out []failure
	for _, ve := range form.ValidationErrors(err) {
		out = append(out, failure{ve.Field, ve.Rule})
	}
	return out
}

func TestValidate_NetworkForm(t *testing.T) {
	f := loadNetworkForm(t)

	tests := []struct {
		name string
		data constraint.Map
		want []failure
	}{
		{
			name: "missing password",
			data: constraint.Map{"host": "node-1"},
			want: []failure{{"auth.password", form.RuleRequired}},
		},
		{
			name: "short password",
			data: constraint.Map{"host": "node-1", "auth": map[string]any{"password": "short"}},
			want: []failure{{"auth.password", form.RuleMinLength}},
		},
		{
			name: "key auth hides password and requires key",
			data: constraint.Map{"auth": map[string]any{"type": "key"}, "host": "bad_host!", "replicas": 9},
			want: []failure{
				{"auth.key", form.RuleRequired},
				{"host", form.RuleType},
				{"replicas", form.RuleMax},
			},
		},
		{
			name: "unknown option and malformed key",
			data: constraint.Map{"auth": map[string]any{"type": "token", "key": "rsa"}, "host": "h", "replicas": 0},
			want: []failure{
				{"auth.type", form.RuleOptions},
				{"auth.key", form.RulePattern},
				{"replicas", form.RuleMin},
			},
		},
		{
			name: "valid key auth",
			data: constraint.Map{"auth": map[string]any{"type": "key", "key": "ssh-ed25519 AAAA"}, "host": "node-1", "replicas": "3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.Validate(tt.data)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, failures(err))
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	f := loadNetworkForm(t)

	err := f.Validate(constraint.Map{"auth": map[string]any{"type": "key"}, "host": "node-1", "replicas": 9})
	require.Error(t, err)
	errs := form.ValidationErrors(err)
	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], `field "auth.key": is required`)
	assert.EqualError(t, errs[1], `field "replicas": must be at most 5 (got 9)`)
	assert.Contains(t, err.Error(), "2 validation errors:")

	err = f.Validate(constraint.Map{"auth": map[string]any{"type": "other", "password": "long-enough"}, "host": "h"})
	assert.EqualError(t, err, `field "auth.type": must be one of "password", "key" (got other)`)
}

func TestValidate_Types(t *testing.T) {
	tests := []struct {
		field form.FieldConfig
		value any
		rule  string
	}{
		{form.FieldConfig{Type: form.TypeNumber}, "abc", form.RuleType},
		{form.FieldConfig{Type: form.TypeNumber}, "4.5", ""},
		{form.FieldConfig{Type: form.TypeCheckbox}, "yes", form.RuleType},
		{form.FieldConfig{Type: form.TypeCheckbox}, false, ""},
		{form.FieldConfig{Type: form.TypeIP}, "10.0.0.300", form.RuleType},
		{form.FieldConfig{Type: form.TypeIP}, "::1", ""},
		{form.FieldConfig{Type: form.TypeBinary}, "10 MiB", ""},
		{form.FieldConfig{Type: form.TypeBinary}, "ten", form.RuleType},
		{form.FieldConfig{Type: form.TypeHostname}, "db.internal", ""},
		{form.FieldConfig{Validators: form.Validators{PatternType: form.PatternHostAddress}}, "10.0.0.1", ""},
		{form.FieldConfig{Validators: form.Validators{PatternType: form.PatternHostAddress}}, "-bad-", form.RulePatternType},
		{form.FieldConfig{Validators: form.Validators{PatternType: form.PatternNumeric}}, "12a", form.RulePatternType},
		{form.FieldConfig{Validators: form.Validators{PatternType: form.PatternNumeric}}, "-1.5e3", ""},
		{form.FieldConfig{Validators: form.Validators{PatternType: form.PatternBinaryUnit}}, "1.5GB", ""},
		{form.FieldConfig{Validators: form.Validators{Pattern: "[a-z]+"}}, "abc1", form.RulePattern},
		{form.FieldConfig{Validators: form.Validators{Pattern: "[a-z]+"}}, "abc", ""},
	}
	for _, tt := range tests {
		field := tt.field
		field.Name = "v"
		t.Run(string(field.Type)+"/"+string(field.Validators.PatternType)+"/"+constraint.ToString(tt.value), func(t *testing.T) {
			f, err := form.New([]form.FieldConfig{field})
			require.NoError(t, err)

			err = f.Validate(constraint.Map{"v": tt.value})
			if tt.rule == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []failure{{"v", tt.rule}}, failures(err))
		})
	}
}

func TestValidate_EmptySkipsRules(t *testing.T) {
	minLen := 3
	f, err := form.New([]form.FieldConfig{
		{Name: "optional", Validators: form.Validators{MinLength: &minLen, Pattern: "x+"}},
		{Name: "list", Validators: form.Validators{Required: true}},
	})
	require.NoError(t, err)

	err = f.Validate(constraint.Map{"optional": "", "list": []any{}})
	assert.Equal(t, []failure{{"list", form.RuleRequired}}, failures(err))
}
