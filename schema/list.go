package schema

import (
	"fmt"
	"slices"

	"logidconf/node"
)

type listType[T any] struct {
	elem Type[T]
}

// List resolves a sequence whose elements all resolve as elem.
func List[T any](elem Type[T]) Type[[]T] {
	return listType[T]{elem: elem}
}

func (t listType[T]) Name() string { return "list of " + t.elem.Name() }

func (t listType[T]) Resolve(s *Scope, n node.Node) ([]T, error) {
	seq, ok := n.(node.Sequence)
	if !ok {
		return nil, mismatch(t.Name(), n)
	}

	out := make([]T, 0, len(seq))

	for i, item := range seq {
		v, err := t.elem.Resolve(s.element(i, ""), item)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}

		out = append(out, v)
	}

	return out, nil
}

func (t listType[T]) Encode(vs []T) node.Node {
	seq := make(node.Sequence, len(vs))
	for i, v := range vs {
		seq[i] = t.elem.Encode(v)
	}

	return seq
}

// Set is an insertion-ordered set of distinct values.
type Set[T comparable] struct {
	items []T
	index map[T]struct{}
}

// NewSet builds a set; repeated items are kept once, at their first position.
func NewSet[T comparable](items ...T) Set[T] {
	s := Set[T]{index: make(map[T]struct{}, len(items))}
	for _, v := range items {
		s.add(v)
	}

	return s
}

func (s *Set[T]) add(v T) {
	if _, ok := s.index[v]; ok {
		return
	}

	s.index[v] = struct{}{}
	s.items = append(s.items, v)
}

// Contains reports whether v is a member.
func (s Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int { return len(s.items) }

// Items returns the members in first-seen order.
func (s Set[T]) Items() []T { return slices.Clone(s.items) }

type setType[T comparable] struct {
	list listType[T]
}

// SetOf resolves a sequence into a Set. Repeated members collapse into one
// and each dropped repeat is reported as an info diagnostic.
func SetOf[T comparable](elem Type[T]) Type[Set[T]] {
	return setType[T]{list: listType[T]{elem: elem}}
}

func (t setType[T]) Name() string { return "set of " + t.list.elem.Name() }

func (t setType[T]) Resolve(s *Scope, n node.Node) (Set[T], error) {
	items, err := t.list.Resolve(s, n)
	if err != nil {
		return Set[T]{}, err
	}

	set := NewSet[T]()

	for i, v := range items {
		if set.Contains(v) {
			s.diags.AddInfo("duplicate_member", fmt.Sprintf("repeated %s dropped", quoteValue(v)),
				t.Name(), s.path.Element(i, "").String())

			continue
		}

		set.add(v)
	}

	return set, nil
}

func (t setType[T]) Encode(v Set[T]) node.Node {
	return t.list.Encode(v.items)
}
