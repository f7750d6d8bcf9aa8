package envcfg

import (
	"fmt"
	"math/big"

	"github.com/containeroo/envcfg/keypath"
)

// Source tells where a resolved value came from.
type Source uint8

const (
	SourceEnvironment Source = iota
	SourceDefault
	SourceTemplate
)

func (s Source) String() string {
	switch s {
	case SourceEnvironment:
		return "environment"
	case SourceDefault:
		return "default"
	case SourceTemplate:
		return "template"
	}
	return fmt.Sprintf("Source(%d)", uint8(s))
}

// Value is a resolved, typed variable.
type Value struct {
	key string
	typ Type
	raw string
	val any
	src Source
}

// Key returns the environment key the value was read from or written to.
func (v Value) Key() string { return v.key }

// Type returns the declared type.
func (v Value) Type() Type { return v.typ }

// Raw returns the string before conversion.
func (v Value) Raw() string { return v.raw }

// Source returns where the value came from.
func (v Value) Source() Source { return v.src }

// Interface returns the typed Go value: bool, int, int8...int64, uint,
// uint8...uint64, *big.Int for the 128-bit types, float32, float64 or string.
func (v Value) Interface() any {
	if b, ok := v.val.(*big.Int); ok {
		return new(big.Int).Set(b)
	}
	return v.val
}

// String returns the raw string for any type.
func (v Value) String() string { return v.raw }

// The typed accessors below panic when called on a value of another kind,
// like the accessors of reflect.Value.

func (v Value) Bool() bool {
	b, ok := v.val.(bool)
	if !ok {
		v.mismatch("Bool")
	}
	return b
}

// Int64 returns any signed integer up to 64 bits wide.
func (v Value) Int64() int64 {
	switch n := v.val.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	v.mismatch("Int64")
	return 0
}

func (v Value) Int() int { return int(v.Int64()) }

// Uint64 returns any unsigned integer up to 64 bits wide.
func (v Value) Uint64() uint64 {
	switch n := v.val.(type) {
	case uint:
		return uint64(n)
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	}
	v.mismatch("Uint64")
	return 0
}

func (v Value) Uint() uint { return uint(v.Uint64()) }

// BigInt returns any integer value, including the 128-bit types, as a new *big.Int.
func (v Value) BigInt() *big.Int {
	switch {
	case v.typ == Int128 || v.typ == Uint128:
		return new(big.Int).Set(v.val.(*big.Int))
	case v.typ.signed():
		return big.NewInt(v.Int64())
	case v.typ.unsigned():
		return new(big.Int).SetUint64(v.Uint64())
	}
	v.mismatch("BigInt")
	return nil
}

func (v Value) Float64() float64 {
	switch f := v.val.(type) {
	case float32:
		return float64(f)
	case float64:
		return f
	}
	v.mismatch("Float64")
	return 0
}

func (v Value) mismatch(method string) {
	panic(fmt.Sprintf("envcfg: Value.%s called on %s value of %q", method, v.typ, v.key))
}

// Snapshot is the resolved configuration tree. It is never modified after
// Initialize returns and is safe for concurrent reads.
type Snapshot struct {
	name     string
	path     []string
	order    []string // local names in declaration order
	values   map[string]Value
	children map[string]*Snapshot
}

func newSnapshot(ns *Namespace) *Snapshot {
	return &Snapshot{
		name:     ns.name,
		path:     ns.path,
		values:   make(map[string]Value),
		children: make(map[string]*Snapshot),
	}
}

func (s *Snapshot) addValue(name string, v Value) {
	s.order = append(s.order, name)
	s.values[name] = v
}

func (s *Snapshot) addChild(name string, c *Snapshot) {
	s.order = append(s.order, name)
	s.children[name] = c
}

// Name returns the namespace name; empty for the root.
func (s *Snapshot) Name() string { return s.name }

// Get returns the variable key inside the namespace reached by following path
// from s. Names are matched exactly as declared.
func (s *Snapshot) Get(path []string, key string) (Value, bool) {
	cur := s
	for _, name := range path {
		next, ok := cur.children[name]
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	v, ok := cur.values[key]
	return v, ok
}

// Lookup resolves a dotted path such as "APP.RECIPES.PER_PAGE".
func (s *Snapshot) Lookup(path string) (Value, bool) {
	ns, key, err := keypath.Split(path)
	if err != nil {
		return Value{}, false
	}
	return s.Get(ns, key)
}

// Namespace returns the direct child namespace name.
func (s *Snapshot) Namespace(name string) (*Snapshot, bool) {
	c, ok := s.children[name]
	return c, ok
}

// Names returns the local names of the variables and child namespaces of s,
// in declaration order. Empty namespaces are included.
func (s *Snapshot) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of variables in s and all of its descendants.
func (s *Snapshot) Len() int {
	n := len(s.values)
	for _, c := range s.children {
		n += c.Len()
	}
	return n
}

// Walk calls fn for every variable, depth-first in declaration order. path is
// the namespace path relative to s. A non-nil error from fn stops the walk
// and is returned.
func (s *Snapshot) Walk(fn func(path []string, name string, v Value) error) error {
	return s.walk(nil, fn)
}

func (s *Snapshot) walk(path []string, fn func([]string, string, Value) error) error {
	for _, name := range s.order {
		if c, ok := s.children[name]; ok {
			if err := c.walk(append(path[:len(path):len(path)], name), fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, name, s.values[name]); err != nil {
			return err
		}
	}
	return nil
}
