// Package node defines the generic document tree consumed by the resolver.
//
// A document parser (YAML, JSON, TOML, ...) turns a file into a tree of
// three shapes:
//
//   - Scalar: a single string, integer, float or boolean
//   - Sequence: an ordered list of nodes
//   - Mapping: an ordered list of (key, node) pairs with unique keys
//
// Nothing in this package knows about the configuration schema.
package node

import (
	"fmt"
	"strconv"
)

// Node is a unit of parsed document structure.
// The set of implementations is closed: Scalar, Sequence and Mapping.
type Node interface {
	Kind() Kind
	isNode()
}

// Scalar holds exactly one primitive value.
type Scalar struct {
	kind ScalarKind
	s    string
	i    int64
	f    float64
	b    bool
}

// String returns a string scalar.
func String(s string) Scalar { return Scalar{kind: ScalarString, s: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{kind: ScalarInt, i: i} }

// Float returns a floating point scalar.
func Float(f float64) Scalar { return Scalar{kind: ScalarFloat, f: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{kind: ScalarBool, b: b} }

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) isNode()    {}

// ScalarKind reports which primitive the scalar holds.
func (s Scalar) ScalarKind() ScalarKind { return s.kind }

// AsString returns the value if the scalar is a string.
func (s Scalar) AsString() (string, bool) {
	return s.s, s.kind == ScalarString
}

// AsInt returns the value if the scalar is an integer.
func (s Scalar) AsInt() (int64, bool) {
	return s.i, s.kind == ScalarInt
}

// AsFloat returns the value if the scalar is numeric. Integers are widened.
func (s Scalar) AsFloat() (float64, bool) {
	switch s.kind {
	case ScalarFloat:
		return s.f, true
	case ScalarInt:
		return float64(s.i), true
	default:
		return 0, false
	}
}

// AsBool returns the value if the scalar is a boolean.
func (s Scalar) AsBool() (bool, bool) {
	return s.b, s.kind == ScalarBool
}

// Text returns the canonical textual form of the value.
func (s Scalar) Text() string {
	switch s.kind {
	case ScalarString:
		return s.s
	case ScalarInt:
		return strconv.FormatInt(s.i, 10)
	case ScalarFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case ScalarBool:
		return strconv.FormatBool(s.b)
	default:
		return ""
	}
}

// Sequence is an ordered list of nodes.
type Sequence []Node

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) isNode()    {}

// Pair is one entry of a Mapping.
type Pair struct {
	Key   string
	Value Node
}

// Mapping is an ordered list of uniquely keyed pairs.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

// NewMapping builds a mapping from pairs in document order.
// It panics on a repeated key: parsers must reject those before building nodes.
func NewMapping(pairs ...Pair) Mapping {
	m := Mapping{
		pairs: make([]Pair, 0, len(pairs)),
		index: make(map[string]int, len(pairs)),
	}

	for _, p := range pairs {
		if _, dup := m.index[p.Key]; dup {
			panic(fmt.Sprintf("node: duplicate mapping key %q", p.Key))
		}

		m.index[p.Key] = len(m.pairs)
		m.pairs = append(m.pairs, p)
	}

	return m
}

func (Mapping) Kind() Kind { return KindMapping }
func (Mapping) isNode()    {}

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.pairs[i].Value, true
}

// Has reports whether key is present.
func (m Mapping) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Len returns the number of pairs.
func (m Mapping) Len() int { return len(m.pairs) }

// Pairs returns the pairs in document order. The slice must not be modified.
func (m Mapping) Pairs() []Pair { return m.pairs }

// Keys returns the keys in document order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}

	return keys
}

// Describe returns a short description of a node's shape for error messages.
func Describe(n Node) string {
	switch v := n.(type) {
	case nil:
		return "nothing"
	case Scalar:
		switch v.kind {
		case ScalarString:
			return strconv.Quote(v.s)
		case ScalarInt:
			return "integer " + v.Text()
		case ScalarFloat:
			return "float " + v.Text()
		case ScalarBool:
			return "boolean " + v.Text()
		default:
			return "empty scalar"
		}
	case Sequence:
		return fmt.Sprintf("sequence of %d", len(v))
	case Mapping:
		return fmt.Sprintf("mapping with %d keys", v.Len())
	default:
		return fmt.Sprintf("%T", n)
	}
}
