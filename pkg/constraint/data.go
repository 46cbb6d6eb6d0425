package constraint

import (
	"reflect"
	"strconv"
	"strings"
)

// Data resolves dotted paths against a data object.
// A missing segment anywhere along the path yields (nil, false).
type Data interface {
	Get(path string) (any, bool)
}

// DataFunc adapts a plain function to the Data interface.
type DataFunc func(path string) (any, bool)

// Get calls f(path).
func (f DataFunc) Get(path string) (any, bool) {
	return f(path)
}

// Map is the default data object: a JSON-like tree of maps and slices.
//
// A top-level key equal to the whole path takes precedence, so {"a.b": 1} resolves "a.b".
// Otherwise each segment descends into a map with string keys, or into a slice when the
// segment is a non-negative index.
type Map map[string]any

// Get resolves path against the map.
func (m Map) Get(path string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m[path]; ok {
		return v, true
	}
	if !strings.Contains(path, ".") {
		return nil, false
	}

	var cur any = map[string]any(m)
	for _, seg := range strings.Split(path, ".") {
		next, ok := child(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set writes value at the dotted path, creating intermediate maps as needed.
// Intermediate values that are not maps are replaced. An existing top-level key
// equal to the whole path is overwritten in place, matching Get.
func (m Map) Set(path string, value any) {
	if _, ok := m[path]; ok {
		m[path] = value
		return
	}
	segs := strings.Split(path, ".")
	cur := map[string]any(m)
	for _, seg := range segs[:len(segs)-1] {
		switch next := cur[seg].(type) {
		case map[string]any:
			cur = next
		case Map:
			cur = next
		default:
			created := make(map[string]any)
			cur[seg] = created
			cur = created
		}
	}
	cur[segs[len(segs)-1]] = value
}

// Clone returns a deep copy of the nested maps and slices.
// Scalars are shared.
func (m Map) Clone() Map {
	if m == nil {
		return Map{}
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Map(t).Clone())
	case Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

func child(v any, seg string) (any, bool) {
	switch c := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		x, ok := c[seg]
		return x, ok
	case Map:
		x, ok := c[seg]
		return x, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		e := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !e.IsValid() {
			return nil, false
		}
		return e.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

func lookup(data Data, path string) any {
	if data == nil {
		return nil
	}
	v, _ := data.Get(path)
	return v
}
