package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// CanonicalNode returns the canonical document of tree as an ordered YAML node.
// Keys follow the FieldDescriptor declaration order, unset optionals are
// explicit nulls, and children keep tree order.
func CanonicalNode(tree *SpecTree) *yaml.Node {
	doc := mappingNode()

	for _, scope := range tree.Scopes() {
		addPair(doc, string(scope.Name), descriptorList(scope.Fields))
	}

	return doc
}

// MarshalCanonical serializes tree as canonical YAML.
// Two calls on the same tree return identical bytes.
func MarshalCanonical(tree *SpecTree) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(CanonicalNode(tree)); err != nil {
		return nil, fmt.Errorf("encoding canonical yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding canonical yaml: %w", err)
	}

	return buf.Bytes(), nil
}

// MarshalCanonicalJSON serializes the same canonical document as indented JSON.
func MarshalCanonicalJSON(tree *SpecTree) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeJSON(&buf, CanonicalNode(tree), ""); err != nil {
		return nil, err
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func descriptorList(nodes []*FieldDescriptor) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(nodes) == 0 {
		seq.Style = yaml.FlowStyle
	}

	for _, d := range nodes {
		seq.Content = append(seq.Content, descriptorNode(d))
	}

	return seq
}

func descriptorNode(d *FieldDescriptor) *yaml.Node {
	m := mappingNode()

	addPair(m, "originalLabel", strNode(d.OriginalLabel))
	addPair(m, "normalizedName", strNode(d.NormalizedName))
	addPair(m, "containerClassName", optStrNode(d.ContainerClassName))
	addPair(m, "nestingLevel", intNode(d.NestingLevel))
	addPair(m, "length", optIntNode(d.Length))
	addPair(m, "semanticType", optStrNode(d.SemanticType))
	addPair(m, "optionality", strNode(d.Optionality.String()))
	addPair(m, "defaultValue", optStrNode(d.DefaultValue))
	addPair(m, "hardCodedValue", optStrNode(d.HardCodedValue))
	addPair(m, "groupTag", optStrNode(d.GroupTag))

	if d.Occurrence == nil {
		addPair(m, "occurrenceRange", nullNode())
	} else {
		rng := mappingNode()
		addPair(rng, "min", intNode(d.Occurrence.Min))
		addPair(rng, "max", intNode(d.Occurrence.Max))
		addPair(m, "occurrenceRange", rng)
	}

	addPair(m, "shape", strNode(d.Shape.String()))
	addPair(m, "isTransitory", boolNode(d.IsTransitory))
	addPair(m, "children", descriptorList(d.Children))

	prov := mappingNode()
	addPair(prov, "sectionName", strNode(d.Provenance.Section))
	addPair(prov, "rowIndex", intNode(d.Provenance.Row))
	addPair(m, "provenance", prov)

	return m
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func optStrNode(s *string) *yaml.Node {
	if s == nil {
		return nullNode()
	}

	return strNode(*s)
}

func intNode(n int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
}

func optIntNode(n *int) *yaml.Node {
	if n == nil {
		return nullNode()
	}

	return intNode(*n)
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// writeJSON renders a canonical node as JSON, keeping mapping order.
func writeJSON(buf *bytes.Buffer, n *yaml.Node, indent string) error {
	inner := indent + "  "

	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}

		buf.WriteString("{\n")

		for i := 0; i < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteString(",\n")
			}

			buf.WriteString(inner)

			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return fmt.Errorf("encoding canonical json key: %w", err)
			}

			buf.Write(key)
			buf.WriteString(": ")

			if err := writeJSON(buf, n.Content[i+1], inner); err != nil {
				return err
			}
		}

		buf.WriteString("\n" + indent + "}")

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}

		buf.WriteString("[\n")

		for i, item := range n.Content {
			if i > 0 {
				buf.WriteString(",\n")
			}

			buf.WriteString(inner)

			if err := writeJSON(buf, item, inner); err != nil {
				return err
			}
		}

		buf.WriteString("\n" + indent + "]")

	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int", "!!bool", "!!null":
			buf.WriteString(n.Value)
		default:
			s, err := json.Marshal(n.Value)
			if err != nil {
				return fmt.Errorf("encoding canonical json value: %w", err)
			}

			buf.Write(s)
		}

	default:
		return fmt.Errorf("unexpected yaml node kind %v", n.Kind)
	}

	return nil
}
