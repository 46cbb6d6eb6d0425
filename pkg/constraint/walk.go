package constraint

// Walk visits n and its operands depth-first, arg0 before arg1.
// pos is the position of the node relative to the root ("" for the root,
// "arg0", "arg0.arg1", ...). Returning false from fn skips the node's operands.
func Walk(n Node, fn func(pos string, n Node) bool) {
	walk("", n, fn)
}

func walk(pos string, n Node, fn func(string, Node) bool) {
	n = normalize(n)
	if n == nil {
		return
	}
	if !fn(pos, n) {
		return
	}
	c, ok := n.(Constraint)
	if !ok {
		return
	}
	walk(join(pos, "arg0"), c.Arg0, fn)
	walk(join(pos, "arg1"), c.Arg1, fn)
}

func join(pos, seg string) string {
	if pos == "" {
		return seg
	}
	return pos + "." + seg
}

// Properties returns every property path referenced by n, without duplicates,
// in the order they are first encountered.
func Properties(n Node) []string {
	var out []string
	seen := make(map[string]struct{})
	Walk(n, func(_ string, n Node) bool {
		if p, ok := n.(Property); ok {
			if _, dup := seen[p.Path]; !dup {
				seen[p.Path] = struct{}{}
				out = append(out, p.Path)
			}
		}
		return true
	})
	return out
}
