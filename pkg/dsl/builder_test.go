package dsl_test

import (
	"testing"

	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/aretw0/formlogic/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_WrapOperands(t *testing.T) {
	got := dsl.Eq(dsl.Prop("foo"), "xyz")
	want := constraint.Constraint{
		Operator: constraint.OpEq,
		Arg0:     constraint.Property{Path: "foo"},
		Arg1:     constraint.Literal{Value: "xyz"},
	}
	assert.Equal(t, want, got)

	nested := dsl.Not(dsl.Z(dsl.Prop("bar")))
	assert.Equal(t, constraint.OpNot, nested.Operator)
	assert.Nil(t, nested.Arg1)
	assert.Equal(t, constraint.OpZ, nested.Arg0.(constraint.Constraint).Operator)
}

func TestConstructors_MatchWireFormat(t *testing.T) {
	node := dsl.And(
		dsl.Eq(dsl.Prop("auth.type"), "password"),
		dsl.Z(dsl.Prop("auth.key")),
	)

	parsed, err := constraint.Parse(map[string]any{
		"operator": "and",
		"arg0":     map[string]any{"operator": "eq", "arg0": map[string]any{"prop": "auth.type"}, "arg1": "password"},
		"arg1":     map[string]any{"operator": "z", "arg0": map[string]any{"prop": "auth.key"}},
	})
	require.NoError(t, err)
	assert.Equal(t, parsed, constraint.Node(node))
	assert.NoError(t, constraint.Check(node))
}

func TestTerm_Evaluation(t *testing.T) {
	data := constraint.Map{
		"name":     "worker-01",
		"replicas": 3,
		"mode":     "yes",
		"tags":     []any{"a", "b"},
	}

	tests := []struct {
		name string
		node constraint.Node
		want bool
	}{
		{"eq", dsl.On("replicas").Eq(3), true},
		{"ne", dsl.On("replicas").Ne(3), false},
		{"lt", dsl.On("replicas").Lt(4), true},
		{"le", dsl.On("replicas").Le(3), true},
		{"gt", dsl.On("replicas").Gt(3), false},
		{"ge", dsl.On("replicas").Ge(3), true},
		{"in substring", dsl.On("name").In("my-worker-01-host"), true},
		{"one of", dsl.On("name").OneOf("worker-01", "worker-02"), true},
		{"empty", dsl.On("missing").Empty(), true},
		{"present", dsl.On("name").Present(), true},
		{"truthy", dsl.On("mode").Truthy(), true},
		{"falsy", dsl.On("missing").Falsy(), true},
		{"starts with", dsl.On("name").StartsWith("worker"), true},
		{"ends with", dsl.On("name").EndsWith("02"), false},
		{"matches", dsl.On("name").Matches(`-\d+$`), true},
		{"length", dsl.On("tags").Length().Eq(2), true},
		{"of literal", dsl.Of("abc").Length().Gt(2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, constraint.Test(tt.node, data))
		})
	}
}

func TestFolds(t *testing.T) {
	assert.Equal(t, dsl.Lit(true), dsl.All())
	assert.Equal(t, dsl.Lit(false), dsl.Any())
	assert.Equal(t, constraint.Node(dsl.Prop("a")), dsl.All(dsl.Prop("a")))

	all := dsl.All(dsl.Prop("a"), dsl.Prop("b"), dsl.Prop("c"))
	assert.Equal(t, "(a && b) && c", constraint.String(all))
	assert.Equal(t, []string{"a", "b", "c"}, constraint.Properties(all))

	data := constraint.Map{"a": true, "b": 1, "c": ""}
	assert.False(t, constraint.Test(all, data))
	assert.True(t, constraint.Test(dsl.Any(dsl.Prop("c"), dsl.Prop("b")), data))
}

func TestBuilder(t *testing.T) {
	b := dsl.When(dsl.On("mode").Ne("advanced")).
		Or(dsl.On("features").Length().Lt(1))

	assert.Equal(t, `(mode != "advanced") || (length(features) < 1)`, constraint.String(b.Build()))

	assert.False(t, constraint.Test(b.Build(), constraint.Map{"mode": "advanced", "features": []any{"x"}}))
	assert.True(t, constraint.Test(b.Build(), constraint.Map{"mode": "advanced"}))

	negated := dsl.When(dsl.On("a").Truthy()).And(dsl.On("b").Present()).Not()
	assert.True(t, constraint.Test(negated.Build(), constraint.Map{"a": "yes"}))

	expr := dsl.When(dsl.Eq(dsl.Prop("x"), 1)).Expression()
	assert.True(t, expr.Computed())

	// builders and terms nest as operands
	nested := dsl.And(dsl.When(true), dsl.On("flag"))
	assert.Equal(t, constraint.Node(dsl.Prop("flag")), nested.Arg1)
	assert.Equal(t, constraint.Node(dsl.Lit(true)), nested.Arg0)
}
