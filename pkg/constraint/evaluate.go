package constraint

import (
	"regexp"
	"strings"
)

// Evaluate interprets n against data.
//
// Literals are returned unchanged and properties resolve to the value at their path
// (nil when absent). Constraints return a bool, except "length" which returns a float64.
// Unknown operators evaluate to false. Evaluate never panics and keeps no state between
// calls, so it is safe for concurrent use.
func Evaluate(n Node, data Data) any {
	switch v := normalize(n).(type) {
	case Literal:
		return v.Value
	case Property:
		return lookup(data, v.Path)
	case Constraint:
		return evalConstraint(v, data)
	}
	return nil
}

// Test evaluates n and reports the truthiness of the result.
func Test(n Node, data Data) bool {
	return Truthy(Evaluate(n, data))
}

func evalConstraint(c Constraint, data Data) any {
	arg0 := func() any { return Evaluate(c.Arg0, data) }
	arg1 := func() any { return Evaluate(c.Arg1, data) }

	switch c.Operator {
	case OpAnd:
		return Truthy(arg0()) && Truthy(arg1())
	case OpOr:
		return Truthy(arg0()) || Truthy(arg1())
	case OpNot:
		return !Truthy(arg0())
	case OpLt:
		r, ok := compare(arg0(), arg1())
		return ok && r < 0
	case OpLe:
		r, ok := compare(arg0(), arg1())
		return ok && r <= 0
	case OpGe:
		r, ok := compare(arg0(), arg1())
		return ok && r >= 0
	case OpGt:
		r, ok := compare(arg0(), arg1())
		return ok && r > 0
	case OpEq:
		return strictEqual(arg0(), arg1())
	case OpNe:
		return !strictEqual(arg0(), arg1())
	case OpIn:
		needle := arg0()
		return contains(arg1(), needle)
	case OpZ:
		return IsEmpty(arg0())
	case OpN:
		return !IsEmpty(arg0())
	case OpLength:
		return length(arg0())
	case OpTruthy:
		return isTruthyToken(arg0())
	case OpFalsy:
		return isFalsyToken(arg0())
	case OpStartsWith:
		s := ToString(arg0())
		return strings.HasPrefix(s, ToString(arg1()))
	case OpEndsWith:
		s := ToString(arg0())
		return strings.HasSuffix(s, ToString(arg1()))
	case OpRegexp:
		s := ToString(arg0())
		re, err := regexp.Compile(ToString(arg1()))
		if err != nil {
			return false
		}
		return re.MatchString(s)
	}
	return false
}
