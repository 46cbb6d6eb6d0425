package form

import (
	"reflect"
	"sort"

	"github.com/aretw0/formlogic/pkg/constraint"
)

// Diff returns the sorted dotted paths whose values differ between old and new,
// covering added, modified and deleted keys. Nested maps are compared key by key;
// any other value is compared as a whole.
func Diff(old, new constraint.Map) []string {
	var paths []string
	diffMaps("", old, new, &paths)
	sort.Strings(paths)
	return paths
}

func diffMaps(prefix string, old, new map[string]any, paths *[]string) {
	// Added or modified
	for k, newVal := range new {
		path := join(prefix, k)
		oldVal, exists := old[k]
		if !exists {
			*paths = append(*paths, path)
			continue
		}
		oldMap, oldIsMap := asMap(oldVal)
		newMap, newIsMap := asMap(newVal)
		if oldIsMap && newIsMap {
			diffMaps(path, oldMap, newMap, paths)
			continue
		}
		if !reflect.DeepEqual(oldVal, newVal) {
			*paths = append(*paths, path)
		}
	}

	// Deleted
	for k := range old {
		if _, exists := new[k]; !exists {
			*paths = append(*paths, join(prefix, k))
		}
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case constraint.Map:
		return m, true
	}
	return nil, false
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
