package constraint

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse converts a generic decoded value (from encoding/json, yaml.v3, or a plain Go
// literal) into a tree. Objects carrying "operator" become Constraints, objects carrying
// "prop" become Properties and everything else is a Literal.
//
// An absent "arg0"/"arg1" key leaves the operand nil; an explicit null becomes a nil Literal.
func Parse(raw any) (Node, error) {
	switch v := raw.(type) {
	case Node:
		return normalize(v), nil
	case map[string]any:
		return parseObject(v)
	case Map:
		return parseObject(v)
	case map[any]any:
		obj := make(map[string]any, len(v))
		for k, val := range v {
			key, ok := k.(string)
			if !ok {
				return Literal{Value: raw}, nil
			}
			obj[key] = val
		}
		return parseObject(obj)
	}
	return Literal{Value: raw}, nil
}

func parseObject(obj map[string]any) (Node, error) {
	if op, ok := obj["operator"]; ok {
		name, ok := op.(string)
		if !ok {
			return nil, fmt.Errorf("operator must be a string, got %T", op)
		}
		c := Constraint{Operator: Operator(name)}
		if raw, ok := obj["arg0"]; ok {
			n, err := Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("arg0: %w", err)
			}
			c.Arg0 = n
		}
		if raw, ok := obj["arg1"]; ok {
			n, err := Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("arg1: %w", err)
			}
			c.Arg1 = n
		}
		return c, nil
	}

	if p, ok := obj["prop"]; ok {
		path, ok := p.(string)
		if !ok {
			return nil, fmt.Errorf("prop must be a string, got %T", p)
		}
		return Property{Path: path}, nil
	}

	return Literal{Value: obj}, nil
}

// Raw converts a tree back into its generic wire shape.
func Raw(n Node) any {
	switch v := normalize(n).(type) {
	case Literal:
		return v.Value
	case Property:
		return map[string]any{"prop": v.Path}
	case Constraint:
		out := map[string]any{"operator": string(v.Operator)}
		if v.Arg0 != nil {
			out["arg0"] = Raw(v.Arg0)
		}
		if v.Arg1 != nil {
			out["arg1"] = Raw(v.Arg1)
		}
		return out
	}
	return nil
}

// Expression wraps a Node so it can be embedded in configuration structs
// decoded from JSON or YAML.
type Expression struct {
	Node Node
}

// IsZero reports whether no expression was configured.
func (e Expression) IsZero() bool {
	return normalize(e.Node) == nil
}

// Computed reports whether the expression depends on the data object,
// i.e. it is a Property or a Constraint rather than a Literal.
func (e Expression) Computed() bool {
	switch normalize(e.Node).(type) {
	case Property, Constraint:
		return true
	}
	return false
}

// Eval evaluates the expression; an unset expression yields nil.
func (e Expression) Eval(data Data) any {
	return Evaluate(e.Node, data)
}

// Bool evaluates the expression for its truthiness, returning def when unset.
func (e Expression) Bool(data Data, def bool) bool {
	if e.IsZero() {
		return def
	}
	return Test(e.Node, data)
}

// MarshalJSON implements json.Marshaler.
func (e Expression) MarshalJSON() ([]byte, error) {
	return json.Marshal(Raw(e.Node))
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expression) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n, err := Parse(raw)
	if err != nil {
		return err
	}
	e.Node = n
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (e Expression) MarshalYAML() (any, error) {
	return Raw(e.Node), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Expression) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	n, err := Parse(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	e.Node = n
	return nil
}
