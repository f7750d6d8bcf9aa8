package schemafile

import (
	"fmt"

	"github.com/containeroo/envcfg"
)

// node is the format-neutral tree every decoder produces.
type node struct {
	name      string
	decl      string
	namespace bool
	children  []*node
}

// child returns the namespace child called name, creating it if needed.
func (n *node) child(name string) *node {
	for _, c := range n.children {
		if c.namespace && c.name == name {
			return c
		}
	}
	c := &node{name: name, namespace: true}
	n.children = append(n.children, c)
	return c
}

// descend walks path from n, creating namespaces as needed.
func (n *node) descend(path []string) *node {
	cur := n
	for _, name := range path {
		cur = cur.child(name)
	}
	return cur
}

func toSpec(nodes []*node) (*envcfg.NamespaceSpec, error) {
	members, err := mapWithError(nodes, toMember)
	if err != nil {
		return nil, err
	}
	return envcfg.NS("", members...), nil
}

func toMember(n *node) (envcfg.Member, error) {
	if !n.namespace {
		v, err := envcfg.ParseDeclaration(n.name, n.decl)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	members, err := mapWithError(n.children, toMember)
	if err != nil {
		return nil, fmt.Errorf("namespace %q: %w", n.name, err)
	}
	return envcfg.NS(n.name, members...), nil
}

// mapWithError applies fn to each item, stopping on the first error.
func mapWithError[T, U any](in []T, fn func(T) (U, error)) ([]U, error) {
	out := make([]U, 0, len(in))
	for _, item := range in {
		v, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
