package dsl

import "github.com/aretw0/formlogic/pkg/constraint"

// Term provides a fluent API for constraints about a single operand.
type Term struct {
	node constraint.Node
}

// On starts a term about the property at path.
func On(path string) Term {
	return Term{node: Prop(path)}
}

// Of starts a term about an arbitrary operand.
func Of(v any) Term {
	return Term{node: node(v)}
}

func (t Term) Eq(v any) constraint.Constraint { return Eq(t.node, v) }
func (t Term) Ne(v any) constraint.Constraint { return Ne(t.node, v) }
func (t Term) Lt(v any) constraint.Constraint { return Lt(t.node, v) }
func (t Term) Le(v any) constraint.Constraint { return Le(t.node, v) }
func (t Term) Gt(v any) constraint.Constraint { return Gt(t.node, v) }
func (t Term) Ge(v any) constraint.Constraint { return Ge(t.node, v) }
func (t Term) In(v any) constraint.Constraint { return In(t.node, v) }
func (t Term) Empty() constraint.Constraint { return Z(t.node) }
func (t Term) Present() constraint.Constraint { return N(t.node) }
func (t Term) Truthy() constraint.Constraint { return Truthy(t.node) }
func (t Term) Falsy() constraint.Constraint { return Falsy(t.node) }
func (t Term) StartsWith(s any) constraint.Constraint { return StartsWith(t.node, s) }
func (t Term) EndsWith(s any) constraint.Constraint { return EndsWith(t.node, s) }
func (t Term) Matches(pattern string) constraint.Constraint {
	return Regexp(t.node, pattern)
}

// OneOf is true when the operand equals one of values.
func (t Term) OneOf(values ...any) constraint.Constraint {
	return In(t.node, values)
}

// Length continues the term with the operand's length.
func (t Term) Length() Term {
	return Term{node: Length(t.node)}
}

// Node returns the operand built so far.
func (t Term) Node() constraint.Node {
	return t.node
}

// Builder composes boolean conditions left to right.
type Builder struct {
	node constraint.Node
}

// When starts a builder from an initial condition.
func When(cond any) *Builder {
	return &Builder{node: node(cond)}
}

// And requires cond in addition to the conditions so far.
func (b *Builder) And(cond any) *Builder {
	b.node = And(b.node, cond)
	return b
}

// Or accepts cond as an alternative to the conditions so far.
func (b *Builder) Or(cond any) *Builder {
	b.node = Or(b.node, cond)
	return b
}

// Not negates the conditions so far.
func (b *Builder) Not() *Builder {
	b.node = Not(b.node)
	return b
}

// Build returns the composed tree.
func (b *Builder) Build() constraint.Node {
	return b.node
}

// Expression wraps the composed tree for embedding into configuration structs.
func (b *Builder) Expression() constraint.Expression {
	return constraint.Expression{Node: b.node}
}
