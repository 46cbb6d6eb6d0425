/*
Package constraint implements the declarative constraint language used by data-driven forms.

A constraint is a small expression tree evaluated against a data object. Form fields attach
constraints to decide whether they are required, read-only or hidden, and to compute values
from other fields. Whenever the data object changes, the affected constraints are simply
evaluated again.

# Node Kinds

A tree is built from exactly three node kinds:

  - Literal: a plain value (bool, number, string, array of numbers or strings).
  - Property: a dotted path ("host.address") resolved against the data object.
  - Constraint: an operator ("eq", "and", "length", ...) applied to one or two operands.

# Wire Format

Configuration documents describe trees in JSON or YAML:

	operator: and
	arg0:
	  operator: eq
	  arg0: {prop: auth.type}
	  arg1: password
	arg1:
	  operator: z
	  arg0: {prop: auth.key}

Use Parse for generic decoded values, or embed an Expression in configuration structs.

# Evaluation

Evaluate is total: it never panics or fails. Missing properties resolve to nil, unknown
operators evaluate to false and invalid regular expressions never match. Use Check when
loading configuration to reject malformed trees early.
*/
package constraint
