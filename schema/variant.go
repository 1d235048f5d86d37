package schema

import (
	"fmt"

	"logidconf/internal/match"
	"logidconf/node"
)

// Arm is one alternative of a Variant: a discriminant value and the group
// describing the mapping when the discriminant holds that value.
type Arm[T any] struct {
	value   string
	resolve func(s *Scope, n node.Node) (T, error)
	encode  func(v T) (node.Node, bool)
}

// Case declares the arm selected by value. A must implement the variant
// type T; every arm of a variant needs a distinct A so encoding can tell
// arms apart.
func Case[T, A any](value string, g *Group[A]) Arm[T] {
	var zero A
	if _, ok := any(zero).(T); !ok {
		panic(fmt.Sprintf("schema: arm %q: %T does not implement %T", value, zero, (*T)(nil)))
	}

	return Arm[T]{
		value: value,
		resolve: func(s *Scope, n node.Node) (T, error) {
			a, err := g.Resolve(s, n)
			if err != nil {
				var none T
				return none, err
			}

			return any(a).(T), nil
		},
		encode: func(v T) (node.Node, bool) {
			a, ok := any(v).(A)
			if !ok {
				return nil, false
			}

			return g.Encode(a), true
		},
	}
}

// Variant is a closed tagged union. The discriminant field of a mapping
// selects exactly one arm; the rest of the mapping is resolved by that arm.
type Variant[T any] struct {
	name  string
	field string
	arms  []Arm[T]
	index map[string]int
}

// NewVariant builds a variant discriminated by field. Arm values must be
// unique.
func NewVariant[T any](name, field string, arms ...Arm[T]) *Variant[T] {
	v := &Variant[T]{
		name:  name,
		field: field,
		arms:  arms,
		index: make(map[string]int, len(arms)),
	}

	for i, arm := range arms {
		if _, dup := v.index[arm.value]; dup {
			panic(fmt.Sprintf("schema: %s arm %q declared twice", name, arm.value))
		}

		v.index[arm.value] = i
	}

	return v
}

func (v *Variant[T]) Name() string { return v.name }

// Discriminant returns the name of the tag field.
func (v *Variant[T]) Discriminant() string { return v.field }

// Values returns the accepted discriminant values in declaration order.
func (v *Variant[T]) Values() []string {
	values := make([]string, len(v.arms))
	for i, arm := range v.arms {
		values[i] = arm.value
	}

	return values
}

func (v *Variant[T]) Resolve(s *Scope, n node.Node) (T, error) {
	var zero T

	m, ok := n.(node.Mapping)
	if !ok {
		return zero, mismatch(v.name+" mapping", n)
	}

	raw, ok := m.Get(v.field)
	if !ok {
		return zero, &MissingDiscriminantError{Type: v.name, Field: v.field}
	}

	tag, ok := raw.(node.Scalar)
	value, isString := tag.AsString()

	if !ok || !isString {
		return zero, &FieldError{Field: v.field, Err: mismatch("string", raw)}
	}

	i, ok := v.index[value]
	if !ok {
		valid := v.Values()
		suggestion, _ := match.Closest(value, valid)

		return zero, &UnknownVariantError{
			Type:       v.name,
			Field:      v.field,
			Value:      value,
			Valid:      valid,
			Suggestion: suggestion,
		}
	}

	return v.arms[i].resolve(s.claim(v.field), m)
}

func (v *Variant[T]) Encode(val T) node.Node {
	for _, arm := range v.arms {
		if n, ok := arm.encode(val); ok {
			return prepend(node.Pair{Key: v.field, Value: node.String(arm.value)}, n)
		}
	}

	panic(fmt.Sprintf("schema: %T is not an arm of %s", val, v.name))
}

// prepend puts pair in front of an encoded mapping.
func prepend(pair node.Pair, n node.Node) node.Node {
	m, ok := n.(node.Mapping)
	if !ok {
		panic(fmt.Sprintf("schema: cannot attach %q to %s", pair.Key, node.Describe(n)))
	}

	pairs := make([]node.Pair, 0, m.Len()+1)
	pairs = append(pairs, pair)

	for _, p := range m.Pairs() {
		if p.Key != pair.Key {
			pairs = append(pairs, p)
		}
	}

	return node.NewMapping(pairs...)
}
