package paramfile

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"nacagen/internal/namelist"
)

// DecodeYAML decodes a single YAML (or JSON) mapping into a parameter set.
func DecodeYAML(data []byte) (*namelist.ParameterSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("parameter file is empty")
	}
	return FromNode(doc.Content[0])
}

// FromNode converts a YAML mapping node into a parameter set. Null values
// are skipped; sequences and nested mappings are rejected.
func FromNode(node *yaml.Node) (*namelist.ParameterSet, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: parameters must be a mapping", node.Line)
	}
	ps := namelist.NewParameterSet()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		key := strings.TrimSpace(keyNode.Value)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty parameter name", keyNode.Line)
		}
		if valNode.Kind == yaml.AliasNode && valNode.Alias != nil {
			valNode = valNode.Alias
		}
		if valNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: parameter %s must be a scalar", valNode.Line, key)
		}
		if valNode.ShortTag() == "!!null" {
			continue
		}
		v, err := scalarValue(valNode)
		if err != nil {
			return nil, fmt.Errorf("line %d: parameter %s: %w", valNode.Line, key, err)
		}
		ps.Set(key, v)
	}
	return ps, nil
}

// ParseScalar types a single raw value with YAML scalar rules.
func ParseScalar(raw string) (namelist.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return namelist.String(""), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.ScalarNode {
		return namelist.String(raw), nil
	}
	return scalarValue(doc.Content[0])
}

func scalarValue(n *yaml.Node) (namelist.Value, error) {
	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return namelist.Value{}, err
		}
		return namelist.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return namelist.Value{}, err
		}
		return namelist.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return namelist.Value{}, err
		}
		return namelist.Real(f), nil
	default:
		return namelist.String(n.Value), nil
	}
}
