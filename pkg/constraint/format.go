package constraint

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var infix = map[Operator]string{
	OpAnd: "&&",
	OpOr:  "||",
	OpLt:  "<",
	OpLe:  "<=",
	OpNe:  "!=",
	OpEq:  "==",
	OpGe:  ">=",
	OpGt:  ">",
	OpIn:  "in",
}

// String renders a tree in a compact infix notation, e.g.
//
//	(auth.type == "password") && z(auth.key)
func String(n Node) string {
	return format(n, true)
}

func format(n Node, top bool) string {
	switch v := normalize(n).(type) {
	case nil:
		return "?"
	case Literal:
		return FormatLiteral(v.Value)
	case Property:
		return v.Path
	case Constraint:
		if sym, ok := infix[v.Operator]; ok {
			s := fmt.Sprintf("%s %s %s", format(v.Arg0, false), sym, format(v.Arg1, false))
			if top {
				return s
			}
			return "(" + s + ")"
		}
		if v.Operator == OpNot {
			return "!" + format(v.Arg0, false)
		}
		if normalize(v.Arg1) == nil {
			return fmt.Sprintf("%s(%s)", v.Operator, format(v.Arg0, true))
		}
		return fmt.Sprintf("%s(%s, %s)", v.Operator, format(v.Arg0, true), format(v.Arg1, true))
	}
	return "?"
}

// FormatLiteral renders a literal value: strings are quoted, lists bracketed.
func FormatLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatLiteral(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ToString(v)
}
