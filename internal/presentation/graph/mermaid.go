package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/formlogic/pkg/constraint"
)

// GraphOverlay colours the rendered tree with the outcome of evaluating it
// against Data.
type GraphOverlay struct {
	Data constraint.Data
}

// GenerateMermaid renders a constraint tree as a Mermaid flowchart.
// Operators are drawn as rhombi (logical) or rectangles, properties as
// stadiums and literals as parallelograms. Edges are labelled with the
// operand they feed.
func GenerateMermaid(root constraint.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var passed, failed, missing []string
	constraint.Walk(root, func(pos string, n constraint.Node) bool {
		id := nodeID(pos)
		sb.WriteString(fmt.Sprintf("    %s%s\n", id, shape(n)))
		if pos != "" {
			parent, arg := splitPos(pos)
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(parent), arg, id))
		}
		if overlay == nil || overlay.Data == nil {
			return true
		}
		switch v := n.(type) {
		case constraint.Constraint:
			if constraint.Test(v, overlay.Data) {
				passed = append(passed, id)
			} else {
				failed = append(failed, id)
			}
		case constraint.Property:
			if _, ok := overlay.Data.Get(v.Path); !ok {
				missing = append(missing, id)
			}
		}
		return true
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef pass fill:#9f9,stroke:#333,stroke-width:2px;\n")
		sb.WriteString("    classDef fail fill:#f99,stroke:#333,stroke-width:2px;\n")
		sb.WriteString("    classDef missing stroke-dasharray: 5 5;\n")
		writeClass(&sb, "pass", passed)
		writeClass(&sb, "fail", failed)
		writeClass(&sb, "missing", missing)
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, class string, ids []string) {
	if len(ids) > 0 {
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", strings.Join(ids, ","), class))
	}
}

func shape(n constraint.Node) string {
	switch v := n.(type) {
	case constraint.Constraint:
		switch v.Operator {
		case constraint.OpAnd, constraint.OpOr, constraint.OpNot:
			return fmt.Sprintf("{\"%s\"}", v.Operator)
		}
		return fmt.Sprintf("[\"%s\"]", v.Operator)
	case constraint.Property:
		return fmt.Sprintf("([\"%s\"])", escape(v.Path))
	case constraint.Literal:
		return fmt.Sprintf("[/\"%s\"/]", escape(constraint.FormatLiteral(v.Value)))
	}
	return "[\"?\"]"
}

func nodeID(pos string) string {
	if pos == "" {
		return "root"
	}
	return "root_" + sanitizeMermaidID(pos)
}

func splitPos(pos string) (parent, arg string) {
	i := strings.LastIndexByte(pos, '.')
	if i < 0 {
		return "", pos
	}
	return pos[:i], pos[i+1:]
}

// Mermaid labels cannot contain double quotes.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_")
	return r.Replace(id)
}
