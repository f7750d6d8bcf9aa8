package envcfg

import (
	"errors"
	"fmt"
)

// Initialize resolves every variable of root, depth-first in declaration
// order, and returns the resulting Snapshot. A variable falling back to its
// default, or composed from a template, has the result written to its
// effective key before the next variable is resolved. The first failure
// aborts initialization; no partial Snapshot is returned.
func Initialize(root *Namespace, opts ...Option) (*Snapshot, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil namespace", ErrBadDeclaration)
	}
	o := newOptions(opts)
	snap, err := o.resolveNamespace(root)
	if err != nil {
		return nil, err
	}
	o.log.V(1).Info("configuration initialized", "variables", snap.Len())
	return snap, nil
}

// MustInitialize is like Initialize but panics on error.
func MustInitialize(root *Namespace, opts ...Option) *Snapshot {
	snap, err := Initialize(root, opts...)
	if err != nil {
		panic(err)
	}
	return snap
}

// Load builds spec and initializes it.
func Load(spec *NamespaceSpec, opts ...Option) (*Snapshot, error) {
	root, err := Build(spec)
	if err != nil {
		return nil, err
	}
	return Initialize(root, opts...)
}

func (o *options) resolveNamespace(ns *Namespace) (*Snapshot, error) {
	snap := newSnapshot(ns)
	for _, e := range ns.entries {
		if e.ns != nil {
			child, err := o.resolveNamespace(e.ns)
			if err != nil {
				return nil, err
			}
			snap.addChild(e.ns.name, child)
			continue
		}
		val, err := o.resolveVariable(e.v)
		if err != nil {
			return nil, err
		}
		snap.addValue(e.v.Name, val)
	}
	return snap, nil
}

func (o *options) resolveVariable(v *Variable) (Value, error) {
	raw, src, err := o.rawValue(v)
	if err != nil {
		return Value{}, err
	}
	typed, err := coerce(raw, v.Type, o.strictBool)
	if err != nil {
		var convErr *TypeConversionError
		if errors.As(err, &convErr) {
			convErr.Key = v.Key
		}
		return Value{}, err
	}
	if src != SourceEnvironment {
		if err := o.env.Set(v.Key, raw); err != nil {
			return Value{}, err
		}
		o.log.V(1).Info("wrote resolved value to environment", "key", v.Key, "source", src)
	}
	return Value{key: v.Key, typ: v.Type, raw: raw, val: typed, src: src}, nil
}

// rawValue finds the string for v: composed from its template, read from
// its key, or taken from its default.
func (o *options) rawValue(v *Variable) (string, Source, error) {
	if len(v.Template) > 0 {
		s, err := v.Template.Resolve(o.env)
		if err != nil {
			return "", 0, err
		}
		return s, SourceTemplate, nil
	}
	if s, ok := o.env.Lookup(v.Key); ok {
		return s, SourceEnvironment, nil
	}
	if v.Default == nil {
		return "", 0, &MissingVariableError{Key: v.Key}
	}
	return *v.Default, SourceDefault, nil
}
