package schema

import (
	"fmt"

	"logidconf/internal/match"
	"logidconf/node"
)

// FieldSpec declares one field of a Group: its document name, whether it is
// required, and how to resolve it into and encode it out of a T.
type FieldSpec[T any] struct {
	name     string
	required bool
	resolve  func(s *Scope, n node.Node, dst *T) error
	encode   func(src *T) (node.Node, bool)
}

// Field declares a required field. get returns the storage of the field
// inside a T; it serves as both setter and getter.
func Field[T, F any](name string, typ Type[F], get func(*T) *F) FieldSpec[T] {
	return FieldSpec[T]{
		name:     name,
		required: true,
		resolve: func(s *Scope, n node.Node, dst *T) error {
			v, err := typ.Resolve(s, n)
			if err != nil {
				return err
			}

			*get(dst) = v

			return nil
		},
		encode: func(src *T) (node.Node, bool) {
			return typ.Encode(*get(src)), true
		},
	}
}

// OptionalField declares a field that may be absent. An absent field leaves
// the Optional unset.
func OptionalField[T, F any](name string, typ Type[F], get func(*T) *Optional[F]) FieldSpec[T] {
	return FieldSpec[T]{
		name: name,
		resolve: func(s *Scope, n node.Node, dst *T) error {
			v, err := typ.Resolve(s, n)
			if err != nil {
				return err
			}

			*get(dst) = Some(v)

			return nil
		},
		encode: func(src *T) (node.Node, bool) {
			v, ok := get(src).Get()
			if !ok {
				return nil, false
			}

			return typ.Encode(v), true
		},
	}
}

// Group resolves a mapping into the product type T using a fixed field table.
type Group[T any] struct {
	name   string
	fields []FieldSpec[T]
	index  map[string]int
	checks []func(*T) error
}

// NewGroup builds a group. The table is fixed once built; declaring the
// same field name twice panics.
func NewGroup[T any](name string, fields ...FieldSpec[T]) *Group[T] {
	g := &Group[T]{
		name:   name,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		if _, dup := g.index[f.name]; dup {
			panic(fmt.Sprintf("schema: field %q declared twice in %s", f.name, name))
		}

		g.index[f.name] = i
	}

	return g
}

// Check registers an invariant evaluated after all fields resolved.
func (g *Group[T]) Check(fn func(*T) error) *Group[T] {
	g.checks = append(g.checks, fn)
	return g
}

func (g *Group[T]) Name() string { return g.name }

// Fields returns the declared field names in declaration order.
func (g *Group[T]) Fields() []string {
	names := make([]string, len(g.fields))
	for i, f := range g.fields {
		names[i] = f.name
	}

	return names
}

// Required reports whether name is declared and required.
func (g *Group[T]) Required(name string) bool {
	i, ok := g.index[name]
	return ok && g.fields[i].required
}

func (g *Group[T]) Resolve(s *Scope, n node.Node) (T, error) {
	var out T

	m, ok := n.(node.Mapping)
	if !ok {
		return out, mismatch(g.name+" mapping", n)
	}

	for _, f := range g.fields {
		child, ok := m.Get(f.name)
		if !ok {
			if f.required {
				return out, &MissingFieldError{Type: g.name, Field: f.name}
			}

			continue
		}

		if err := f.resolve(s.field(f.name), child, &out); err != nil {
			return out, &FieldError{Field: f.name, Err: err}
		}
	}

	if err := g.unknownFields(s, m); err != nil {
		return out, err
	}

	for _, check := range g.checks {
		if err := check(&out); err != nil {
			return out, err
		}
	}

	return out, nil
}

// unknownFields applies the scope's policy to keys no field declares.
func (g *Group[T]) unknownFields(s *Scope, m node.Mapping) error {
	for _, key := range m.Keys() {
		if _, declared := g.index[key]; declared || s.claimed(key) {
			continue
		}

		if s.opts.unknown == UnknownFieldsIgnore {
			continue
		}

		suggestion, _ := match.Closest(key, g.Fields())

		if s.opts.unknown == UnknownFieldsReject {
			return &UnknownFieldError{Type: g.name, Field: key, Suggestion: suggestion}
		}

		s.diags.AddWarning("unknown_field", unknownField(key, g.name, suggestion),
			g.name, s.path.Field(key).String())
	}

	return nil
}

func (g *Group[T]) Encode(v T) node.Node {
	pairs := make([]node.Pair, 0, len(g.fields))

	for _, f := range g.fields {
		if n, ok := f.encode(&v); ok {
			pairs = append(pairs, node.Pair{Key: f.name, Value: n})
		}
	}

	return node.NewMapping(pairs...)
}
