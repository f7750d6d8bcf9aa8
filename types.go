package envcfg

import (
	"fmt"
	"strings"
)

// Type is the declared type of a variable.
type Type uint8

const (
	String Type = iota
	Bool
	Int
	Int8
	Int16
	Int32
	Int64
	Int128
	Uint
	Uint8
	Uint16
	Uint32
	Uint64
	Uint128
	Float32
	Float64
)

var typeNames = [...]string{
	String:  "string",
	Bool:    "bool",
	Int:     "int",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Int128:  "int128",
	Uint:    "uint",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Uint128: "uint128",
	Float32: "float32",
	Float64: "float64",
}

// short names as written in schema files
var typeAliases = map[string]Type{
	"str":   String,
	"isize": Int,
	"i8":    Int8,
	"i16":   Int16,
	"i32":   Int32,
	"i64":   Int64,
	"i128":  Int128,
	"usize": Uint,
	"u8":    Uint8,
	"u16":   Uint16,
	"u32":   Uint32,
	"u64":   Uint64,
	"u128":  Uint128,
	"f32":   Float32,
	"f64":   Float64,
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType maps a type name to a Type. Go names ("uint32") and short
// names ("u32", "usize", "String") are accepted, case-insensitively.
func ParseType(name string) (Type, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t, s := range typeNames {
		if s == n {
			return Type(t), nil
		}
	}
	if t, ok := typeAliases[n]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: unknown type %q", ErrBadDeclaration, name)
}

func (t Type) valid() bool { return int(t) < len(typeNames) }

// bitSize returns the width passed to strconv for fixed-width numeric types.
func (t Type) bitSize() int {
	switch t {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int128, Uint128:
		return 128
	case Int, Uint:
		return 0
	default:
		return 64
	}
}

func (t Type) signed() bool {
	switch t {
	case Int, Int8, Int16, Int32, Int64, Int128:
		return true
	}
	return false
}

func (t Type) unsigned() bool {
	switch t {
	case Uint, Uint8, Uint16, Uint32, Uint64, Uint128:
		return true
	}
	return false
}

