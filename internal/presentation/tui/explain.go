package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/formlogic/pkg/constraint"
)

// Explain builds a markdown report of how n evaluates against data:
// the overall result, the value of each referenced property and the
// result of every sub-constraint, indented by depth.
func Explain(n constraint.Node, data constraint.Data) string {
	var sb strings.Builder

	sb.WriteString("# Constraint\n\n")
	sb.WriteString(fmt.Sprintf("`%s`\n\n", constraint.String(n)))
	sb.WriteString(fmt.Sprintf("**Result:** %s\n", constraint.FormatLiteral(constraint.Evaluate(n, data))))

	if props := constraint.Properties(n); len(props) > 0 {
		sb.WriteString("\n## Properties\n\n")
		sb.WriteString("| Property | Value |\n| --- | --- |\n")
		for _, p := range props {
			value := "_missing_"
			if v, ok := data.Get(p); ok {
				value = fmt.Sprintf("`%s`", constraint.FormatLiteral(v))
			}
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", p, value))
		}
	}

	var steps []string
	constraint.Walk(n, func(pos string, node constraint.Node) bool {
		if _, ok := node.(constraint.Constraint); !ok {
			return true
		}
		mark := "✗"
		if constraint.Test(node, data) {
			mark = "✓"
		}
		indent := strings.Repeat("  ", depth(pos))
		steps = append(steps, fmt.Sprintf("%s- %s `%s` → `%s`", indent, mark,
			constraint.String(node), constraint.FormatLiteral(constraint.Evaluate(node, data))))
		return true
	})
	if len(steps) > 0 {
		sb.WriteString("\n## Steps\n\n")
		sb.WriteString(strings.Join(steps, "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func depth(pos string) int {
	if pos == "" {
		return 0
	}
	return strings.Count(pos, ".") + 1
}
