package schema

import (
	"iter"
	"slices"

	"logidconf/node"
)

// Entry is one key/value pair of a Collection.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Collection is an insertion-ordered mapping from keys to values.
// Lookups are by key; iteration follows document order.
type Collection[K comparable, V any] struct {
	keys   []K
	values []V
	index  map[K]int
}

// NewCollection builds a collection from entries, failing with
// DuplicateKeyError when two entries share a key.
func NewCollection[K comparable, V any](entries ...Entry[K, V]) (Collection[K, V], error) {
	c := Collection[K, V]{index: make(map[K]int, len(entries))}

	for _, e := range entries {
		if !c.add(e.Key, e.Value) {
			return Collection[K, V]{}, &DuplicateKeyError{Field: "key", Key: e.Key}
		}
	}

	return c, nil
}

func (c *Collection[K, V]) add(k K, v V) bool {
	if _, dup := c.index[k]; dup {
		return false
	}

	c.index[k] = len(c.keys)
	c.keys = append(c.keys, k)
	c.values = append(c.values, v)

	return true
}

// Len returns the number of entries.
func (c Collection[K, V]) Len() int { return len(c.keys) }

// Get returns the value stored under k.
func (c Collection[K, V]) Get(k K) (V, bool) {
	i, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}

	return c.values[i], true
}

// Has reports whether k is present.
func (c Collection[K, V]) Has(k K) bool {
	_, ok := c.index[k]
	return ok
}

// Keys returns the keys in document order.
func (c Collection[K, V]) Keys() []K { return slices.Clone(c.keys) }

// Values returns the values in document order.
func (c Collection[K, V]) Values() []V { return slices.Clone(c.values) }

// All iterates over the entries in document order.
func (c Collection[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range c.keys {
			if !yield(k, c.values[i]) {
				return
			}
		}
	}
}

type keyedType[K comparable, V any] struct {
	keyField string
	key      Type[K]
	value    Type[V]
}

// KeyedBy resolves a sequence of mappings into a Collection. Each element is
// resolved as value; its key is the keyField attribute of the same element,
// which value therefore never reports as unknown.
func KeyedBy[K comparable, V any](keyField string, key Type[K], value Type[V]) Type[Collection[K, V]] {
	return keyedType[K, V]{keyField: keyField, key: key, value: value}
}

func (t keyedType[K, V]) Name() string {
	return "list of " + t.value.Name() + " keyed by " + t.keyField
}

func (t keyedType[K, V]) Resolve(s *Scope, n node.Node) (Collection[K, V], error) {
	seq, ok := n.(node.Sequence)
	if !ok {
		return Collection[K, V]{}, mismatch(t.Name(), n)
	}

	out := Collection[K, V]{index: make(map[K]int, len(seq))}

	for i, item := range seq {
		label := t.label(item)
		es := s.element(i, label)

		v, err := t.value.Resolve(es.claim(t.keyField), item)
		if err != nil {
			return Collection[K, V]{}, &ElementError{Index: i, Key: label, Err: err}
		}

		k, err := t.resolveKey(es, item)
		if err != nil {
			return Collection[K, V]{}, &ElementError{Index: i, Key: label, Err: err}
		}

		if !out.add(k, v) {
			return Collection[K, V]{}, &ElementError{
				Index: i,
				Key:   label,
				Err:   &DuplicateKeyError{Field: t.keyField, Key: k},
			}
		}
	}

	return out, nil
}

func (t keyedType[K, V]) resolveKey(s *Scope, item node.Node) (K, error) {
	var zero K

	m, ok := item.(node.Mapping)
	if !ok {
		return zero, mismatch(t.value.Name()+" mapping", item)
	}

	raw, ok := m.Get(t.keyField)
	if !ok {
		return zero, &MissingFieldError{Type: t.value.Name(), Field: t.keyField}
	}

	k, err := t.key.Resolve(s.field(t.keyField), raw)
	if err != nil {
		return zero, &FieldError{Field: t.keyField, Err: err}
	}

	return k, nil
}

// label names an element in paths when its key is a string.
func (t keyedType[K, V]) label(item node.Node) string {
	if _, ok := any(*new(K)).(string); !ok {
		return ""
	}

	m, ok := item.(node.Mapping)
	if !ok {
		return ""
	}

	raw, _ := m.Get(t.keyField)
	if sc, ok := raw.(node.Scalar); ok {
		if v, ok := sc.AsString(); ok {
			return v
		}
	}

	return ""
}

func (t keyedType[K, V]) Encode(c Collection[K, V]) node.Node {
	seq := make(node.Sequence, len(c.keys))
	for i, k := range c.keys {
		seq[i] = prepend(node.Pair{Key: t.keyField, Value: t.key.Encode(k)}, t.value.Encode(c.values[i]))
	}

	return seq
}
