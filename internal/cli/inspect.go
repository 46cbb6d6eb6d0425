package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/formlogic/internal/presentation/graph"
	"github.com/aretw0/formlogic/internal/presentation/tui"
	"github.com/aretw0/formlogic/pkg/constraint"
)

// Eval prints the value of node against data as JSON.
func Eval(w io.Writer, node constraint.Node, data constraint.Data) error {
	return writeJSON(w, constraint.Evaluate(node, data))
}

// Deps prints every property node references, one per line.
func Deps(w io.Writer, node constraint.Node) error {
	for _, p := range constraint.Properties(node) {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Graph prints node as a Mermaid flowchart. A non-nil data colours the
// chart with the evaluation outcome.
func Graph(w io.Writer, node constraint.Node, data constraint.Data) error {
	var overlay *graph.GraphOverlay
	if data != nil {
		overlay = &graph.GraphOverlay{Data: data}
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(node, overlay))
	return err
}

// Explain prints a markdown explanation of node against data. A nil render
// writes the raw markdown.
func Explain(w io.Writer, node constraint.Node, data constraint.Data, render func(string) (string, error)) error {
	out := tui.Explain(node, data)
	if render != nil {
		var err error
		if out, err = render(out); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	_, err := io.WriteString(w, out)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		// NaN and infinities have no JSON form.
		_, err = fmt.Fprintln(w, constraint.FormatLiteral(v))
		return err
	}
	return nil
}
