package constraint

import (
	"errors"
	"fmt"
	"regexp"
)

// NodeError describes a malformed node found by Check.
type NodeError struct {
	Pos    string // position in the tree, "" for the root
	Reason string
}

func (e *NodeError) Error() string {
	if e.Pos == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason)
}

// Check validates a tree before it is used in configuration: operators must be known,
// binary operators need both operands, unary operators exactly one, and literal regexp
// patterns must compile. All problems are reported, joined with errors.Join.
func Check(n Node) error {
	if normalize(n) == nil {
		return &NodeError{Reason: "empty constraint"}
	}

	var errs []error
	Walk(n, func(pos string, n Node) bool {
		c, ok := n.(Constraint)
		if !ok {
			return true
		}
		if !c.Operator.Known() {
			errs = append(errs, &NodeError{Pos: pos, Reason: fmt.Sprintf("unknown operator %q", c.Operator)})
			return true
		}
		if normalize(c.Arg0) == nil {
			errs = append(errs, &NodeError{Pos: pos, Reason: fmt.Sprintf("%s: missing arg0", c.Operator)})
		}
		arg1 := normalize(c.Arg1)
		switch {
		case c.Operator.Binary() && arg1 == nil:
			errs = append(errs, &NodeError{Pos: pos, Reason: fmt.Sprintf("%s: missing arg1", c.Operator)})
		case !c.Operator.Binary() && arg1 != nil:
			errs = append(errs, &NodeError{Pos: pos, Reason: fmt.Sprintf("%s: unexpected arg1 for unary operator", c.Operator)})
		}
		if c.Operator == OpRegexp {
			if lit, ok := arg1.(Literal); ok {
				if _, err := regexp.Compile(ToString(lit.Value)); err != nil {
					errs = append(errs, &NodeError{Pos: pos, Reason: fmt.Sprintf("regexp: %v", err)})
				}
			}
		}
		return true
	})

	return errors.Join(errs...)
}
