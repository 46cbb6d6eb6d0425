package constraint

// Operator names the operation performed by a Constraint node.
type Operator string

const (
	OpAnd        Operator = "and"
	OpOr         Operator = "or"
	OpNot        Operator = "not"
	OpLt         Operator = "lt"
	OpLe         Operator = "le"
	OpNe         Operator = "ne"
	OpEq         Operator = "eq"
	OpGe         Operator = "ge"
	OpGt         Operator = "gt"
	OpIn         Operator = "in"
	OpZ          Operator = "z"
	OpN          Operator = "n"
	OpLength     Operator = "length"
	OpTruthy     Operator = "truthy"
	OpFalsy      Operator = "falsy"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpRegexp     Operator = "regexp"
)

var arity = map[Operator]int{
	OpAnd:        2,
	OpOr:         2,
	OpNot:        1,
	OpLt:         2,
	OpLe:         2,
	OpNe:         2,
	OpEq:         2,
	OpGe:         2,
	OpGt:         2,
	OpIn:         2,
	OpZ:          1,
	OpN:          1,
	OpLength:     1,
	OpTruthy:     1,
	OpFalsy:      1,
	OpStartsWith: 2,
	OpEndsWith:   2,
	OpRegexp:     2,
}

// Known reports whether the operator is part of the language.
func (o Operator) Known() bool {
	_, ok := arity[o]
	return ok
}

// Binary reports whether the operator requires a second operand (Arg1).
func (o Operator) Binary() bool {
	return arity[o] == 2
}

// Operators returns every operator of the language in declaration order.
func Operators() []Operator {
	return []Operator{
		OpAnd, OpOr, OpNot, OpLt, OpLe, OpNe, OpEq, OpGe, OpGt, OpIn,
		OpZ, OpN, OpLength, OpTruthy, OpFalsy, OpStartsWith, OpEndsWith, OpRegexp,
	}
}

// Node is an element of a constraint tree.
// It is implemented by Literal, Property and Constraint only.
type Node interface {
	isNode()
}

// Literal is a constant leaf. Its value is returned unchanged by Evaluate.
type Literal struct {
	Value any
}

// Property is a leaf referencing a dotted path into the data object.
type Property struct {
	Path string
}

// Constraint is an internal node applying Operator to its operands.
// Arg1 is nil for unary operators.
type Constraint struct {
	Operator Operator
	Arg0     Node
	Arg1     Node
}

func (Literal) isNode()    {}
func (Property) isNode()   {}
func (Constraint) isNode() {}

// normalize dereferences pointer nodes so callers only deal with values.
// A nil pointer becomes a nil Node.
func normalize(n Node) Node {
	switch v := n.(type) {
	case *Literal:
		if v == nil {
			return nil
		}
		return *v
	case *Property:
		if v == nil {
			return nil
		}
		return *v
	case *Constraint:
		if v == nil {
			return nil
		}
		return *v
	}
	return n
}
