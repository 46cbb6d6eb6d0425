package constraint_test

import (
	"math"
	"testing"

	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prop(path string) constraint.Property { return constraint.Property{Path: path} }

func lit(v any) constraint.Literal { return constraint.Literal{Value: v} }

func op(o constraint.Operator, args ...constraint.Node) constraint.Constraint {
	c := constraint.Constraint{Operator: o}
	if len(args) > 0 {
		c.Arg0 = args[0]
	}
	if len(args) > 1 {
		c.Arg1 = args[1]
	}
	return c
}

func TestEvaluate_Leaves(t *testing.T) {
	data := constraint.Map{"foo": "xyz", "nested": map[string]any{"a": 1}}

	assert.Equal(t, "plain", constraint.Evaluate(lit("plain"), data))
	assert.Equal(t, []any{1, "a"}, constraint.Evaluate(lit([]any{1, "a"}), data))
	assert.Equal(t, "xyz", constraint.Evaluate(prop("foo"), data))
	assert.Equal(t, 1, constraint.Evaluate(prop("nested.a"), data))
	assert.Nil(t, constraint.Evaluate(prop("nested.missing.deep"), data))
	assert.Nil(t, constraint.Evaluate(nil, data))
	assert.Nil(t, constraint.Evaluate(prop("foo"), nil))
}

func TestEvaluate_Operators(t *testing.T) {
	tests := []struct {
		name string
		node constraint.Node
		data constraint.Map
		want any
	}{
		{"eq match", op(constraint.OpEq, prop("foo"), lit("xyz")), constraint.Map{"foo": "xyz"}, true},
		{"eq mismatch", op(constraint.OpEq, prop("foo"), lit("xyz")), constraint.Map{"foo": "abc"}, false},
		{"eq across numeric kinds", op(constraint.OpEq, prop("n"), lit(4)), constraint.Map{"n": 4.0}, true},
		{"eq is strict", op(constraint.OpEq, prop("n"), lit("4")), constraint.Map{"n": 4}, false},
		{"eq missing vs missing", op(constraint.OpEq, prop("a"), prop("b")), constraint.Map{}, true},
		{"ne", op(constraint.OpNe, prop("foo"), lit("xyz")), constraint.Map{"foo": "abc"}, true},
		{"lt numbers", op(constraint.OpLt, prop("n"), lit(10)), constraint.Map{"n": 2}, true},
		{"lt strings", op(constraint.OpLt, lit("abc"), lit("abd")), nil, true},
		{"lt numeric string", op(constraint.OpLt, lit("10"), lit(5)), nil, false},
		{"le equal", op(constraint.OpLe, lit(5), lit(5.0)), nil, true},
		{"ge", op(constraint.OpGe, prop("n"), lit(3)), constraint.Map{"n": 3}, true},
		{"gt", op(constraint.OpGt, prop("n"), lit(3)), constraint.Map{"n": 3}, false},
		{"gt missing is false", op(constraint.OpGt, prop("missing"), lit(0)), constraint.Map{}, false},
		{"lt missing is false", op(constraint.OpLt, prop("missing"), lit(0)), constraint.Map{}, false},
		{"in list hit", op(constraint.OpIn, prop("bar"), lit([]any{1, 2, 3, 4})), constraint.Map{"bar": 2}, true},
		{"in list miss", op(constraint.OpIn, prop("bar"), lit([]any{1, 2, 3, 4})), constraint.Map{"bar": 5}, false},
		{"in typed list", op(constraint.OpIn, prop("bar"), lit([]string{"a", "b"})), constraint.Map{"bar": "b"}, true},
		{"in string", op(constraint.OpIn, lit("ost"), prop("host")), constraint.Map{"host": "localhost"}, true},
		{"in string is literal", op(constraint.OpIn, lit("l.c"), prop("host")), constraint.Map{"host": "localhost"}, false},
		{"in non-list", op(constraint.OpIn, lit(1), lit(1)), nil, false},
		{"z missing", op(constraint.OpZ, prop("missing")), constraint.Map{}, true},
		{"z empty string", op(constraint.OpZ, prop("s")), constraint.Map{"s": ""}, true},
		{"z empty list", op(constraint.OpZ, prop("l")), constraint.Map{"l": []any{}}, true},
		{"z empty map", op(constraint.OpZ, prop("m")), constraint.Map{"m": map[string]any{}}, true},
		{"z number", op(constraint.OpZ, prop("n")), constraint.Map{"n": 0}, false},
		{"n value", op(constraint.OpN, prop("s")), constraint.Map{"s": "x"}, true},
		{"n missing", op(constraint.OpN, prop("s")), constraint.Map{}, false},
		{"length string", op(constraint.OpLength, prop("baz")), constraint.Map{"baz": "abcd"}, 4.0},
		{"length runes", op(constraint.OpLength, prop("baz")), constraint.Map{"baz": "héllo"}, 5.0},
		{"length astral rune", op(constraint.OpLength, prop("baz")), constraint.Map{"baz": "ok 🙂"}, 4.0},
		{"length list", op(constraint.OpLength, prop("l")), constraint.Map{"l": []int{1, 2}}, 2.0},
		{"length missing", op(constraint.OpLength, prop("l")), constraint.Map{}, 0.0},
		{"length in eq", op(constraint.OpEq, op(constraint.OpLength, prop("baz")), lit(4)), constraint.Map{"baz": "abcd"}, true},
		{"truthy yes", op(constraint.OpTruthy, prop("foo")), constraint.Map{"foo": "yes"}, true},
		{"truthy no", op(constraint.OpTruthy, prop("foo")), constraint.Map{"foo": "no"}, false},
		{"truthy one", op(constraint.OpTruthy, prop("foo")), constraint.Map{"foo": 1}, true},
		{"truthy is not generic", op(constraint.OpTruthy, prop("foo")), constraint.Map{"foo": "anything"}, false},
		{"truthy case sensitive", op(constraint.OpTruthy, prop("foo")), constraint.Map{"foo": "YES"}, false},
		{"falsy no", op(constraint.OpFalsy, prop("foo")), constraint.Map{"foo": "no"}, true},
		{"falsy missing", op(constraint.OpFalsy, prop("foo")), constraint.Map{}, true},
		{"falsy NaN", op(constraint.OpFalsy, prop("foo")), constraint.Map{"foo": math.NaN()}, true},
		{"falsy zero", op(constraint.OpFalsy, prop("foo")), constraint.Map{"foo": 0}, true},
		{"falsy yes", op(constraint.OpFalsy, prop("foo")), constraint.Map{"foo": "yes"}, false},
		{"startsWith", op(constraint.OpStartsWith, prop("dev"), lit("/dev/")), constraint.Map{"dev": "/dev/sda"}, true},
		{"startsWith missing", op(constraint.OpStartsWith, prop("dev"), lit("/dev/")), constraint.Map{}, false},
		{"endsWith", op(constraint.OpEndsWith, prop("host"), lit(".local")), constraint.Map{"host": "node1.local"}, true},
		{"regexp search", op(constraint.OpRegexp, prop("v"), lit(`\d+`)), constraint.Map{"v": "abc123def"}, true},
		{"regexp no match", op(constraint.OpRegexp, prop("v"), lit(`^\d+$`)), constraint.Map{"v": "abc123"}, false},
		{"regexp invalid pattern", op(constraint.OpRegexp, prop("v"), lit(`(`)), constraint.Map{"v": "("}, false},
		{"not", op(constraint.OpNot, prop("flag")), constraint.Map{"flag": false}, true},
		{"and", op(constraint.OpAnd, lit(true), prop("flag")), constraint.Map{"flag": "x"}, true},
		{"or", op(constraint.OpOr, lit(0), prop("flag")), constraint.Map{}, false},
		{"unknown operator", op("bogus", lit(true), lit(true)), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, constraint.Evaluate(tt.node, tt.data))
		})
	}
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	var read []string
	spy := constraint.DataFunc(func(path string) (any, bool) {
		read = append(read, path)
		if path == "boom" {
			t.Fatalf("arg1 must not be evaluated")
		}
		return false, true
	})

	and := op(constraint.OpAnd, prop("first"), op(constraint.OpEq, prop("boom"), lit(1)))
	assert.Equal(t, false, constraint.Evaluate(and, spy))

	or := op(constraint.OpOr, op(constraint.OpNot, prop("first")), prop("boom"))
	assert.Equal(t, true, constraint.Evaluate(or, spy))

	assert.Equal(t, []string{"first", "first"}, read)
}

func TestEvaluate_Idempotent(t *testing.T) {
	node := op(constraint.OpAnd,
		op(constraint.OpGt, op(constraint.OpLength, prop("name")), lit(2)),
		op(constraint.OpIn, prop("role"), lit([]any{"admin", "user"})),
	)
	data := constraint.Map{"name": "alice", "role": "user"}

	first := constraint.Evaluate(node, data)
	second := constraint.Evaluate(node, data)
	require.Equal(t, true, first)
	assert.Equal(t, first, second)
}

func TestEvaluate_PointerNodes(t *testing.T) {
	node := &constraint.Constraint{
		Operator: constraint.OpEq,
		Arg0:     &constraint.Property{Path: "foo"},
		Arg1:     &constraint.Literal{Value: "xyz"},
	}
	assert.Equal(t, true, constraint.Evaluate(node, constraint.Map{"foo": "xyz"}))

	var nilNode *constraint.Constraint
	assert.Nil(t, constraint.Evaluate(nilNode, constraint.Map{}))
}

func TestEvaluate_MalformedTreesDegrade(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = constraint.Evaluate(op(constraint.OpRegexp), constraint.Map{})
		_ = constraint.Evaluate(op(constraint.OpIn), constraint.Map{})
		assert.Equal(t, 0.0, constraint.Evaluate(op(constraint.OpLength), constraint.Map{}))
		assert.Equal(t, true, constraint.Evaluate(op(constraint.OpZ), constraint.Map{}))
		assert.Equal(t, false, constraint.Evaluate(op(constraint.OpAnd, lit(true)), constraint.Map{}))
	})
}

func TestTruthy(t *testing.T) {
	for _, v := range []any{nil, false, 0, 0.0, math.NaN(), ""} {
		assert.False(t, constraint.Truthy(v), "%v", v)
	}
	for _, v := range []any{true, 1, -2.5, "0", []any{}, map[string]any{}} {
		assert.True(t, constraint.Truthy(v), "%v", v)
	}
}
