package schema

import (
	"fmt"

	"logidconf/internal/common"
	"logidconf/node"
)

// Alternative is one shape of a Union: a structural predicate and the type
// used when the predicate matches.
type Alternative[T any] struct {
	name    string
	match   func(node.Node) bool
	resolve func(*Scope, node.Node) (T, error)
	encode  func(T) (node.Node, bool)
}

// When declares an alternative resolved as typ whenever match accepts the
// node. wrap lifts the resolved A into T; unwrap reports whether a T was
// built from this alternative and recovers the A for encoding.
func When[T, A any](match func(node.Node) bool, typ Type[A], wrap func(A) T, unwrap func(T) (A, bool)) Alternative[T] {
	return Alternative[T]{
		name:  typ.Name(),
		match: match,
		resolve: func(s *Scope, n node.Node) (T, error) {
			a, err := typ.Resolve(s, n)
			if err != nil {
				var zero T
				return zero, err
			}

			return wrap(a), nil
		},
		encode: func(v T) (node.Node, bool) {
			a, ok := unwrap(v)
			if !ok {
				return nil, false
			}

			return typ.Encode(a), true
		},
	}
}

// Member declares an alternative for an interface-typed union whose
// concrete member type A implements T.
func Member[T, A any](match func(node.Node) bool, typ Type[A]) Alternative[T] {
	var zero A
	if _, ok := any(zero).(T); !ok {
		panic(fmt.Sprintf("schema: %T does not implement %T", zero, (*T)(nil)))
	}

	return When(match, typ,
		func(a A) T { return any(a).(T) },
		func(v T) (A, bool) {
			a, ok := any(v).(A)
			return a, ok
		},
	)
}

// Union is a closed union without a discriminant. Alternatives are tried in
// declaration order and the first structural match is resolved; its errors
// are final, later alternatives are not attempted.
type Union[T any] struct {
	name string
	alts []Alternative[T]
}

// NewUnion builds a union from alternatives in priority order.
func NewUnion[T any](name string, alts ...Alternative[T]) *Union[T] {
	return &Union[T]{name: name, alts: alts}
}

func (u *Union[T]) Name() string { return u.name }

// Alternatives returns the alternative type names in priority order.
func (u *Union[T]) Alternatives() []string {
	return common.Map(u.alts, func(a Alternative[T]) string { return a.name })
}

func (u *Union[T]) Resolve(s *Scope, n node.Node) (T, error) {
	for _, alt := range u.alts {
		if alt.match(n) {
			return alt.resolve(s, n)
		}
	}

	var zero T

	return zero, &NoMatchingAlternativeError{
		Type:     u.name,
		Expected: u.Alternatives(),
		Got:      node.Describe(n),
	}
}

func (u *Union[T]) Encode(v T) node.Node {
	for _, alt := range u.alts {
		if n, ok := alt.encode(v); ok {
			return n
		}
	}

	panic(fmt.Sprintf("schema: %T matches no alternative of %s", v, u.name))
}

// IsScalar matches scalars of any of the given kinds, or any scalar when
// no kind is given.
func IsScalar(kinds ...node.ScalarKind) func(node.Node) bool {
	return func(n node.Node) bool {
		sc, ok := n.(node.Scalar)
		if !ok {
			return false
		}

		if len(kinds) == 0 {
			return true
		}

		for _, k := range kinds {
			if sc.ScalarKind() == k {
				return true
			}
		}

		return false
	}
}

// IsSequence matches sequences.
func IsSequence(n node.Node) bool {
	_, ok := n.(node.Sequence)
	return ok
}

// IsMapping matches mappings.
func IsMapping(n node.Node) bool {
	_, ok := n.(node.Mapping)
	return ok
}

// HasAnyKey matches mappings that carry at least one of keys.
func HasAnyKey(keys ...string) func(node.Node) bool {
	return func(n node.Node) bool {
		m, ok := n.(node.Mapping)
		if !ok {
			return false
		}

		for _, k := range keys {
			if m.Has(k) {
				return true
			}
		}

		return false
	}
}

// Multi holds either a single value or a list, remembering which form the
// document used.
type Multi[T any] struct {
	items []T
	list  bool
}

// One returns a single-value Multi.
func One[T any](v T) Multi[T] {
	return Multi[T]{items: []T{v}}
}

// Many returns a list Multi.
func Many[T any](vs ...T) Multi[T] {
	return Multi[T]{items: vs, list: true}
}

// Items returns every value, one for a single value.
func (m Multi[T]) Items() []T { return m.items }

// Len returns the number of values.
func (m Multi[T]) Len() int { return len(m.items) }

// IsList reports whether the document used the list form.
func (m Multi[T]) IsList() bool { return m.list }

// Single returns the value of the single-value form.
func (m Multi[T]) Single() (T, bool) {
	if m.list || !common.IsSingle(m.items) {
		var zero T
		return zero, false
	}

	return common.First(m.items)
}

// OneOrMany resolves either a single scalar as elem or a list of elem.
// The single-scalar form is tried first.
func OneOrMany[T any](elem Type[T]) Type[Multi[T]] {
	return NewUnion(elem.Name()+" or list",
		When(IsScalar(), elem, One[T], Multi[T].Single),
		When(IsSequence, List(elem),
			func(vs []T) Multi[T] { return Many(vs...) },
			func(m Multi[T]) ([]T, bool) { return m.items, m.list },
		),
	)
}
