package form

import (
	"slices"
	"strings"

	"github.com/aretw0/formlogic/pkg/constraint"
)

// Dependencies maps every data path read by a field's constraints to the names of
// those fields, in declaration order.
func (f *Form) Dependencies() map[string][]string {
	deps := make(map[string][]string)
	for _, field := range f.fields {
		for _, path := range f.reads(field) {
			if !slices.Contains(deps[path], field.Name) {
				deps[path] = append(deps[path], field.Name)
			}
		}
	}
	return deps
}

// reads returns the paths referenced by all constraints of a field.
func (f *Form) reads(field FieldConfig) []string {
	var paths []string
	for _, re := range field.expressions() {
		for _, p := range constraint.Properties(re.expr.Node) {
			if !slices.Contains(paths, p) {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// Affected returns, in declaration order, the fields that must be re-evaluated after
// the given data paths changed: the fields stored at those paths and every field whose
// constraints read them. It follows computed values transitively, and a change to a
// path also affects its parents and children ("net" and "net.mtu").
func (f *Form) Affected(changed ...string) []string {
	dirty := slices.Clone(changed)
	hit := make([]bool, len(f.fields))

	for grew := true; grew; {
		grew = false
		for i, field := range f.fields {
			if hit[i] || !f.touches(field, dirty) {
				continue
			}
			hit[i] = true
			grew = true
			dirty = append(dirty, field.Name)
		}
	}

	var out []string
	for i, field := range f.fields {
		if hit[i] {
			out = append(out, field.Name)
		}
	}
	return out
}

func (f *Form) touches(field FieldConfig, dirty []string) bool {
	for _, d := range dirty {
		if related(field.Name, d) {
			return true
		}
		for _, p := range f.reads(field) {
			if related(p, d) {
				return true
			}
		}
	}
	return false
}

func related(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+".") || strings.HasPrefix(b, a+".")
}
