package envcfg

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

var errBadBool = errors.New("unrecognized boolean")

var (
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Coerce converts raw into the Go value for t. Booleans are permissive:
// "t", "true", "1" and "on" (any case) are true, everything else is false.
func Coerce(raw string, t Type) (any, error) {
	return coerce(raw, t, false)
}

func coerce(raw string, t Type, strictBool bool) (any, error) {
	v, err := convert(raw, t, strictBool)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return nil, &TypeConversionError{Raw: raw, Type: t, Err: err}
	}
	return v, nil
}

func convert(raw string, t Type, strictBool bool) (any, error) {
	switch {
	case t == String:
		return raw, nil
	case t == Bool:
		return parseBool(raw, strictBool)
	case t == Int128 || t == Uint128:
		return parseBig(raw, t)
	case t.signed():
		n, err := strconv.ParseInt(raw, 10, t.bitSize())
		if err != nil {
			return nil, err
		}
		switch t {
		case Int8:
			return int8(n), nil
		case Int16:
			return int16(n), nil
		case Int32:
			return int32(n), nil
		case Int64:
			return n, nil
		}
		return int(n), nil
	case t.unsigned():
		n, err := strconv.ParseUint(raw, 10, t.bitSize())
		if err != nil {
			return nil, err
		}
		switch t {
		case Uint8:
			return uint8(n), nil
		case Uint16:
			return uint16(n), nil
		case Uint32:
			return uint32(n), nil
		case Uint64:
			return n, nil
		}
		return uint(n), nil
	case t == Float32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case t == Float64:
		return strconv.ParseFloat(raw, 64)
	}
	return nil, ErrBadDeclaration
}

func parseBool(raw string, strict bool) (bool, error) {
	switch strings.ToLower(raw) {
	case "t", "true", "1", "on":
		return true, nil
	case "f", "false", "0", "off":
		return false, nil
	}
	if strict {
		return false, errBadBool
	}
	return false, nil
}

func parseBig(raw string, t Type) (*big.Int, error) {
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, strconv.ErrSyntax
	}
	lo, hi := minInt128, maxInt128
	if t == Uint128 {
		lo, hi = new(big.Int), maxUint128
	}
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return nil, strconv.ErrRange
	}
	return n, nil
}
