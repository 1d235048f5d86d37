package schema

import (
	"math"
	"strconv"

	"logidconf/internal/common"
	"logidconf/node"
)

// scalarType resolves a single scalar node through a conversion function.
type scalarType[T any] struct {
	name    string
	convert func(node.Scalar) (T, error)
	encode  func(T) node.Node
}

func (t scalarType[T]) Name() string { return t.name }

func (t scalarType[T]) Resolve(_ *Scope, n node.Node) (T, error) {
	sc, ok := n.(node.Scalar)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{Expected: t.name, Got: node.Describe(n)}
	}

	return t.convert(sc)
}

func (t scalarType[T]) Encode(v T) node.Node { return t.encode(v) }

func mismatch(expected string, n node.Node) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected, Got: node.Describe(n)}
}

// String resolves a string scalar.
var String Type[string] = scalarType[string]{
	name: "string",
	convert: func(sc node.Scalar) (string, error) {
		if v, ok := sc.AsString(); ok {
			return v, nil
		}

		return "", mismatch("string", sc)
	},
	encode: func(v string) node.Node { return node.String(v) },
}

// Bool resolves a boolean scalar.
var Bool Type[bool] = scalarType[bool]{
	name: "boolean",
	convert: func(sc node.Scalar) (bool, error) {
		if v, ok := sc.AsBool(); ok {
			return v, nil
		}

		return false, mismatch("boolean", sc)
	},
	encode: func(v bool) node.Node { return node.Bool(v) },
}

// Int resolves a signed integer scalar.
var Int Type[int] = scalarType[int]{
	name: "integer",
	convert: func(sc node.Scalar) (int, error) {
		v, ok := sc.AsInt()
		if !ok {
			return 0, mismatch("integer", sc)
		}

		if v < math.MinInt || v > math.MaxInt {
			return 0, &InvalidValueError{Value: sc.Text(), Reason: "out of integer range"}
		}

		return int(v), nil
	},
	encode: func(v int) node.Node { return node.Int(int64(v)) },
}

// Uint resolves a non-negative integer scalar.
var Uint Type[uint] = scalarType[uint]{
	name: "unsigned integer",
	convert: func(sc node.Scalar) (uint, error) {
		v, ok := sc.AsInt()
		if !ok {
			return 0, mismatch("unsigned integer", sc)
		}

		if v < 0 {
			return 0, &InvalidValueError{Value: sc.Text(), Reason: "must not be negative"}
		}

		return uint(v), nil
	},
	encode: func(v uint) node.Node { return node.Int(int64(v)) },
}

// Uint16 resolves an integer scalar in [0, 65535], e.g. a control or product ID.
var Uint16 Type[uint16] = scalarType[uint16]{
	name: "16-bit unsigned integer",
	convert: func(sc node.Scalar) (uint16, error) {
		v, ok := sc.AsInt()
		if !ok {
			return 0, mismatch("16-bit unsigned integer", sc)
		}

		if !common.IsInRange(0, v, math.MaxUint16) {
			return 0, &InvalidValueError{
				Value:  sc.Text(),
				Reason: "must be between 0 and " + strconv.Itoa(math.MaxUint16),
			}
		}

		return uint16(v), nil
	},
	encode: func(v uint16) node.Node { return node.Int(int64(v)) },
}

// Float resolves a numeric scalar. Integers are accepted.
var Float Type[float64] = scalarType[float64]{
	name: "number",
	convert: func(sc node.Scalar) (float64, error) {
		if v, ok := sc.AsFloat(); ok {
			return v, nil
		}

		return 0, mismatch("number", sc)
	},
	encode: func(v float64) node.Node { return node.Float(v) },
}

// FloatRange resolves a number within [lo, hi]. NaN and infinities are
// rejected along with everything outside the range.
func FloatRange(lo, hi float64) Type[float64] {
	reason := "must be between " + strconv.FormatFloat(lo, 'g', -1, 64) +
		" and " + strconv.FormatFloat(hi, 'g', -1, 64)

	return scalarType[float64]{
		name: "number",
		convert: func(sc node.Scalar) (float64, error) {
			v, ok := sc.AsFloat()
			if !ok {
				return 0, mismatch("number", sc)
			}

			if math.IsNaN(v) || !common.IsInRange(lo, v, hi) {
				return 0, &InvalidValueError{Value: sc.Text(), Reason: reason}
			}

			return v, nil
		},
		encode: func(v float64) node.Node { return node.Float(v) },
	}
}
