package schemafile

import (
	"fmt"

	"github.com/containeroo/envcfg"
	"gopkg.in/yaml.v3"
)

// YAMLDecoder decodes YAML schemas. Mapping order is kept by walking the
// node tree instead of decoding into maps.
type YAMLDecoder struct{}

func (YAMLDecoder) Decode(data []byte) (*envcfg.NamespaceSpec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return envcfg.NS(""), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		// empty input
		return envcfg.NS(""), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: YAML root must be a mapping (line %d)", ErrBadSchema, root.Line)
	}

	nodes, err := yamlMapping(root)
	if err != nil {
		return nil, err
	}
	return toSpec(nodes)
}

func yamlMapping(m *yaml.Node) ([]*node, error) {
	out := make([]*node, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: non-scalar key at line %d", ErrBadSchema, k.Line)
		}
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}

		switch v.Kind {
		case yaml.MappingNode:
			children, err := yamlMapping(v)
			if err != nil {
				return nil, err
			}
			out = append(out, &node{name: k.Value, namespace: true, children: children})
		case yaml.ScalarNode:
			decl := v.Value
			if v.Tag == "!!null" {
				decl = ""
			}
			out = append(out, &node{name: k.Value, decl: decl})
		default:
			return nil, fmt.Errorf("%w: %q at line %d must be a declaration or a mapping", ErrBadSchema, k.Value, k.Line)
		}
	}
	return out, nil
}
