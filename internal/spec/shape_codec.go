package spec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseShape reads a shape name. Common spellings from schema and class
// artifacts are accepted.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "primitive", "leaf", "":
		return ShapeScalar, nil
	case "composite", "object", "struct", "record":
		return ShapeComposite, nil
	case "repeated", "array", "list", "sequence":
		return ShapeRepeated, nil
	default:
		return ShapeScalar, fmt.Errorf("unknown shape %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}

	*s = v

	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: shape must be a string", node.Line)
	}

	return s.UnmarshalText([]byte(node.Value))
}

// MarshalYAML implements yaml.Marshaler.
func (s Shape) MarshalYAML() (any, error) {
	return s.String(), nil
}
