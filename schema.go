package envcfg

import (
	"fmt"
	"math/big"
	"strconv"
)

// Member is an entry of a NamespaceSpec: a *VariableSpec or a *NamespaceSpec.
type Member interface {
	memberName() string
}

// NamespaceSpec describes a namespace and its members in declaration order.
// The root namespace has an empty name.
type NamespaceSpec struct {
	Name    string
	Members []Member
}

func (n *NamespaceSpec) memberName() string { return n.Name }

// VariableSpec describes one variable. A variable is read either from its
// environment key (optionally falling back to Default) or composed from
// Template; the two forms are exclusive. Composed marks the second form even
// when Template is empty, so Build can reject it instead of reading the key.
type VariableSpec struct {
	Name     string
	Type     Type
	Default  *string
	EnvName  string // overrides the namespace-derived key when set
	Template Template
	Composed bool
}

func (v *VariableSpec) memberName() string { return v.Name }

// VarOption configures a VariableSpec built with Var or Concat.
type VarOption func(*VariableSpec)

// NS builds a NamespaceSpec.
func NS(name string, members ...Member) *NamespaceSpec {
	return &NamespaceSpec{Name: name, Members: members}
}

// Var builds a VariableSpec read from the environment.
func Var(name string, t Type, opts ...VarOption) *VariableSpec {
	v := &VariableSpec{Name: name, Type: t}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Concat builds a string VariableSpec composed from segments.
func Concat(name string, segments []Segment, opts ...VarOption) *VariableSpec {
	v := &VariableSpec{Name: name, Type: String, Template: segments, Composed: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithDefault sets the literal default. Non-string values are stringified
// the way they would be written in the environment.
func WithDefault(value any) VarOption {
	s := FormatDefault(value)
	return func(v *VariableSpec) { v.Default = &s }
}

// WithEnvName overrides the environment key.
func WithEnvName(key string) VarOption {
	return func(v *VariableSpec) { v.EnvName = key }
}

// FormatDefault renders a default literal as its environment string.
func FormatDefault(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *big.Int:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
