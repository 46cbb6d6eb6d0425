package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/aretw0/formlogic/pkg/form"
	"gopkg.in/yaml.v3"
)

// Stdin is the path that reads a document from standard input.
const Stdin = "-"

var stdin io.Reader = os.Stdin

func readFile(path string) ([]byte, error) {
	if path == Stdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// ReadDocument decodes a YAML or JSON document. JSON is read as YAML.
func ReadDocument(path string) (any, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// LoadConstraint reads and validates a constraint tree in wire format.
func LoadConstraint(path string) (constraint.Node, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	node, err := constraint.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := constraint.Check(node); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

// LoadData reads a data object. An empty path yields an empty object.
func LoadData(path string) (constraint.Map, error) {
	if path == "" {
		return constraint.Map{}, nil
	}
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	switch v := doc.(type) {
	case nil:
		return constraint.Map{}, nil
	case map[string]any:
		return constraint.Map(v), nil
	}
	return nil, fmt.Errorf("%s: data must be an object, got %T", path, doc)
}

// LoadForm reads a form definition file.
func LoadForm(path string, opts ...form.Option) (*form.Form, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	f, err := form.Load(bytes.NewReader(raw), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
