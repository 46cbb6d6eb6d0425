package dsl

import "github.com/aretw0/formlogic/pkg/constraint"

// Prop references a dotted path into the data object.
func Prop(path string) constraint.Property {
	return constraint.Property{Path: path}
}

// Lit wraps a constant value.
func Lit(v any) constraint.Literal {
	return constraint.Literal{Value: v}
}

// node lifts an operand into a constraint.Node.
// Nodes pass through; Term and *Builder contribute their tree.
func node(v any) constraint.Node {
	switch n := v.(type) {
	case constraint.Node:
		return n
	case Term:
		return n.node
	case *Builder:
		return n.Build()
	}
	return constraint.Literal{Value: v}
}

func unary(op constraint.Operator, a any) constraint.Constraint {
	return constraint.Constraint{Operator: op, Arg0: node(a)}
}

func binary(op constraint.Operator, a, b any) constraint.Constraint {
	return constraint.Constraint{Operator: op, Arg0: node(a), Arg1: node(b)}
}

// And is true when both operands are truthy. Evaluation short-circuits on a.
func And(a, b any) constraint.Constraint { return binary(constraint.OpAnd, a, b) }

// Or is true when either operand is truthy. Evaluation short-circuits on a.
func Or(a, b any) constraint.Constraint { return binary(constraint.OpOr, a, b) }

// Not negates the truthiness of a.
func Not(a any) constraint.Constraint { return unary(constraint.OpNot, a) }

func Lt(a, b any) constraint.Constraint { return binary(constraint.OpLt, a, b) }
func Le(a, b any) constraint.Constraint { return binary(constraint.OpLe, a, b) }
func Ne(a, b any) constraint.Constraint { return binary(constraint.OpNe, a, b) }
func Eq(a, b any) constraint.Constraint { return binary(constraint.OpEq, a, b) }
func Ge(a, b any) constraint.Constraint { return binary(constraint.OpGe, a, b) }
func Gt(a, b any) constraint.Constraint { return binary(constraint.OpGt, a, b) }

// In tests membership of needle in haystack: a substring when haystack is a string,
// an element when it is a list.
func In(needle, haystack any) constraint.Constraint {
	return binary(constraint.OpIn, needle, haystack)
}

// Z is true when a is empty.
func Z(a any) constraint.Constraint { return unary(constraint.OpZ, a) }

// N is true when a is not empty.
func N(a any) constraint.Constraint { return unary(constraint.OpN, a) }

// Length yields the length of a string or list.
func Length(a any) constraint.Constraint { return unary(constraint.OpLength, a) }

// Truthy matches the affirmative tokens "yes", "y", "true", true and 1.
func Truthy(a any) constraint.Constraint { return unary(constraint.OpTruthy, a) }

// Falsy matches the negative tokens "no", "n", "false", false, 0, "" and nil.
func Falsy(a any) constraint.Constraint { return unary(constraint.OpFalsy, a) }

func StartsWith(a, prefix any) constraint.Constraint {
	return binary(constraint.OpStartsWith, a, prefix)
}

func EndsWith(a, suffix any) constraint.Constraint {
	return binary(constraint.OpEndsWith, a, suffix)
}

// Regexp searches pattern in the string form of a.
func Regexp(a any, pattern string) constraint.Constraint {
	return binary(constraint.OpRegexp, a, pattern)
}

// All folds operands with "and", left to right. It yields a true literal when empty.
func All(operands ...any) constraint.Node {
	return fold(constraint.OpAnd, true, operands)
}

// Any folds operands with "or", left to right. It yields a false literal when empty.
func Any(operands ...any) constraint.Node {
	return fold(constraint.OpOr, false, operands)
}

func fold(op constraint.Operator, empty bool, operands []any) constraint.Node {
	if len(operands) == 0 {
		return Lit(empty)
	}
	acc := node(operands[0])
	for _, o := range operands[1:] {
		acc = constraint.Constraint{Operator: op, Arg0: acc, Arg1: node(o)}
	}
	return acc
}
