package schemafile

import (
	"fmt"

	"github.com/containeroo/envcfg"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// TOMLDecoder decodes TOML schemas. Tables and inline tables are namespaces,
// dotted keys nest, and string values are declarations.
type TOMLDecoder struct{}

func (TOMLDecoder) Decode(data []byte) (*envcfg.NamespaceSpec, error) {
	// Validate TOML syntax by decoding; this also rejects redefined keys and tables.
	var validationTarget map[string]any
	if err := toml.Unmarshal(data, &validationTarget); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	// Walk the expressions in order; maps would lose declaration order.
	root := &node{namespace: true}
	current := root

	p := unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table:
			current = root.descend(tomlKey(e.Key()))
		case unstable.ArrayTable:
			return nil, fmt.Errorf("%w: array tables are not supported (%v)", ErrBadSchema, tomlKey(e.Key()))
		case unstable.KeyValue:
			if err := tomlKeyValue(current, e); err != nil {
				return nil, err
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return toSpec(root.children)
}

func tomlKey(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func tomlKeyValue(parent *node, kv *unstable.Node) error {
	parts := tomlKey(kv.Key())
	last := len(parts) - 1
	ns := parent.descend(parts[:last])
	name := parts[last]

	v := kv.Value()
	switch v.Kind {
	case unstable.String:
		ns.children = append(ns.children, &node{name: name, decl: string(v.Data)})
	case unstable.InlineTable:
		child := &node{name: name, namespace: true}
		ns.children = append(ns.children, child)
		it := v.Children()
		for it.Next() {
			if err := tomlKeyValue(child, it.Node()); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q must be a declaration string or a table", ErrBadSchema, name)
	}
	return nil
}
