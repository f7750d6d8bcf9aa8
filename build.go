package envcfg

import (
	"fmt"
	"strings"
)

// Namespace is a validated schema node. Build creates it; it is read-only afterwards.
type Namespace struct {
	name    string
	path    []string
	entries []entry
}

// entry keeps variables and child namespaces in declaration order.
type entry struct {
	v  *Variable
	ns *Namespace
}

// Variable is a validated variable with its effective environment key.
type Variable struct {
	Name     string
	Type     Type
	Key      string
	Default  *string
	Template Template
}

// Name returns the local name; empty for the root.
func (n *Namespace) Name() string { return n.name }

// Path returns the names from the first child of the root down to n.
func (n *Namespace) Path() []string { return append([]string(nil), n.path...) }

// Variables returns the variables declared directly in n, in order.
func (n *Namespace) Variables() []*Variable {
	var out []*Variable
	for _, e := range n.entries {
		if e.v != nil {
			out = append(out, e.v)
		}
	}
	return out
}

// Namespaces returns the child namespaces of n, in order.
func (n *Namespace) Namespaces() []*Namespace {
	var out []*Namespace
	for _, e := range n.entries {
		if e.ns != nil {
			out = append(out, e.ns)
		}
	}
	return out
}

// EnvKey derives the environment key of a variable from its namespace path:
// the names joined with "_" and upper-cased.
func EnvKey(path []string, name string) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, path...)
	parts = append(parts, name)
	return strings.ToUpper(strings.Join(parts, "_"))
}

// Build validates spec and computes every variable's effective key.
// The root spec's name is ignored; it never contributes to keys.
func Build(spec *NamespaceSpec) (*Namespace, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrBadDeclaration)
	}
	return buildNamespace(spec, "", nil)
}

func buildNamespace(spec *NamespaceSpec, name string, path []string) (*Namespace, error) {
	ns := &Namespace{name: name, path: path, entries: make([]entry, 0, len(spec.Members))}
	seen := make(map[string]struct{}, len(spec.Members))

	for _, m := range spec.Members {
		if m == nil {
			return nil, fmt.Errorf("%w: nil member in namespace %s", ErrBadDeclaration, displayPath(path))
		}
		local := m.memberName()
		if local == "" {
			return nil, fmt.Errorf("%w: empty name in namespace %s", ErrBadDeclaration, displayPath(path))
		}
		if _, dup := seen[local]; dup {
			return nil, &SchemaConflictError{Path: append([]string(nil), path...), Name: local}
		}
		seen[local] = struct{}{}

		switch m := m.(type) {
		case *VariableSpec:
			v, err := buildVariable(m, path)
			if err != nil {
				return nil, err
			}
			ns.entries = append(ns.entries, entry{v: v})
		case *NamespaceSpec:
			childPath := append(append([]string(nil), path...), local)
			child, err := buildNamespace(m, local, childPath)
			if err != nil {
				return nil, err
			}
			ns.entries = append(ns.entries, entry{ns: child})
		default:
			return nil, fmt.Errorf("%w: unsupported member %T", ErrBadDeclaration, m)
		}
	}
	return ns, nil
}

func buildVariable(spec *VariableSpec, path []string) (*Variable, error) {
	key := spec.EnvName
	if key == "" {
		key = EnvKey(path, spec.Name)
	}
	if !spec.Type.valid() {
		return nil, fmt.Errorf("%w: variable %q: invalid type %s", ErrBadDeclaration, key, spec.Type)
	}
	if spec.Composed || len(spec.Template) > 0 {
		if len(spec.Template) == 0 {
			return nil, fmt.Errorf("%w: variable %q: empty template", ErrBadDeclaration, key)
		}
		for i, seg := range spec.Template {
			if err := seg.validate(); err != nil {
				return nil, fmt.Errorf("%w: variable %q: segment %d: %v", ErrBadDeclaration, key, i, err)
			}
		}
		if spec.Default != nil {
			return nil, fmt.Errorf("%w: variable %q: a template variable cannot have a default", ErrBadDeclaration, key)
		}
		if spec.Type != String {
			return nil, fmt.Errorf("%w: variable %q: a template variable must be a string, not %s", ErrBadDeclaration, key, spec.Type)
		}
	}
	return &Variable{
		Name:     spec.Name,
		Type:     spec.Type,
		Key:      key,
		Default:  spec.Default,
		Template: append(Template(nil), spec.Template...),
	}, nil
}

func displayPath(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, ".")
}
