package constraint

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Truthy reports the generic truthiness of a value:
// nil, false, zero, NaN and the empty string are false, everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := asFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// IsEmpty reports whether v is nil, the empty string, or an empty slice, array or map.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ToNumber coerces v to a number the way loosely typed comparisons do:
// booleans become 0 or 1, numeric strings are parsed, the empty string is 0
// and anything else (including nil) is NaN.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return math.NaN()
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	if f, ok := asFloat(v); ok {
		return f
	}
	return math.NaN()
}

// asFloat converts any Go numeric kind to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := n.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// strictEqual compares without type coercion, except that all numeric kinds are
// compared by value. Slices and maps are never equal.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, ok := asFloat(a); ok {
		y, ok := asFloat(b)
		return ok && x == y
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

// compare orders two values. Two strings compare lexicographically, anything else
// is compared numerically. ok is false when either side is not a number.
func compare(a, b any) (int, bool) {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), true
		}
	}
	x, y := ToNumber(a), ToNumber(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, false
	}
	return cmp.Compare(x, y), true
}

// length returns the rune count of strings and the element count of slices and arrays.
func length(v any) float64 {
	if s, ok := v.(string); ok {
		return float64(utf8.RuneCountInString(s))
	}
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return float64(rv.Len())
	}
	return 0
}

// contains tests needle against a string haystack (substring) or a list (membership).
func contains(haystack, needle any) bool {
	if s, ok := haystack.(string); ok {
		return strings.Contains(s, ToString(needle))
	}
	if haystack == nil {
		return false
	}
	rv := reflect.ValueOf(haystack)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if strictEqual(rv.Index(i).Interface(), needle) {
				return true
			}
		}
	}
	return false
}

func isTruthyToken(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "yes" || t == "y" || t == "true"
	case bool:
		return t
	}
	f, ok := asFloat(v)
	return ok && f == 1
}

func isFalsyToken(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "no" || t == "n" || t == "false" || t == ""
	case bool:
		return !t
	}
	f, ok := asFloat(v)
	return ok && (f == 0 || math.IsNaN(f))
}

// ToString renders a value as text: nil is empty, numbers use the shortest
// representation, lists are joined with commas.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	if f, ok := asFloat(v); ok {
		return formatNumber(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = ToString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		return fmt.Sprint(v)
	}
	return ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Equal reports strict equality as used by "eq": numbers compare by value across
// Go numeric kinds, strings and booleans by identity, composites never match.
func Equal(a, b any) bool {
	return strictEqual(a, b)
}

// Length returns the rune count of a string or the element count of a list, 0 otherwise.
func Length(v any) int {
	return int(length(v))
}
