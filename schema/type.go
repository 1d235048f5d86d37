package schema

import (
	"slices"

	"logidconf/diagnostic"
	"logidconf/node"
)

// Type describes how to resolve a node into a T and how to encode it back.
type Type[T any] interface {
	// Name is the human-readable type name used in error messages.
	Name() string
	// Resolve converts n into a T or fails with a structured error.
	Resolve(s *Scope, n node.Node) (T, error)
	// Encode converts v back into a generic node.
	Encode(v T) node.Node
}

// UnknownFieldPolicy decides what happens to mapping keys that no field declares.
type UnknownFieldPolicy int

const (
	// UnknownFieldsWarn records an unknown_field warning and keeps going.
	UnknownFieldsWarn UnknownFieldPolicy = iota
	// UnknownFieldsIgnore drops unknown keys silently.
	UnknownFieldsIgnore
	// UnknownFieldsReject fails resolution with UnknownFieldError.
	UnknownFieldsReject
)

// String returns the flag spelling of the policy.
func (p UnknownFieldPolicy) String() string {
	switch p {
	case UnknownFieldsWarn:
		return "warn"
	case UnknownFieldsIgnore:
		return "ignore"
	case UnknownFieldsReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseUnknownFieldPolicy parses "warn", "ignore" or "reject".
func ParseUnknownFieldPolicy(s string) (UnknownFieldPolicy, bool) {
	for _, p := range []UnknownFieldPolicy{UnknownFieldsWarn, UnknownFieldsIgnore, UnknownFieldsReject} {
		if p.String() == s {
			return p, true
		}
	}

	return UnknownFieldsWarn, false
}

// Option configures a resolution run.
type Option func(*options)

type options struct {
	unknown UnknownFieldPolicy
}

// WithUnknownFields sets the policy for undeclared mapping keys.
func WithUnknownFields(p UnknownFieldPolicy) Option {
	return func(o *options) { o.unknown = p }
}

// Scope carries the state of one resolution run down the tree: the current
// document path, the diagnostics sink, and the keys of the current mapping
// already consumed by an enclosing variant or collection.
type Scope struct {
	path   Path
	opts   *options
	diags  *diagnostic.Diagnostics
	claims []string
}

// NewScope returns a root scope.
func NewScope(opts ...Option) *Scope {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return &Scope{opts: o, diags: &diagnostic.Diagnostics{}}
}

// Path returns the document path of the node being resolved.
func (s *Scope) Path() Path { return s.path }

// field returns the scope of a child field. Claims never cross into children.
func (s *Scope) field(name string) *Scope {
	return &Scope{path: s.path.Field(name), opts: s.opts, diags: s.diags}
}

// element returns the scope of a list element.
func (s *Scope) element(index int, key string) *Scope {
	return &Scope{path: s.path.Element(index, key), opts: s.opts, diags: s.diags}
}

// claim returns a scope for the same node with additional consumed keys.
func (s *Scope) claim(keys ...string) *Scope {
	c := *s
	c.claims = append(slices.Clip(s.claims), keys...)

	return &c
}

func (s *Scope) claimed(key string) bool {
	return slices.Contains(s.claims, key)
}

// Resolve runs t against n in a fresh scope. The diagnostics are returned
// even when resolution fails.
func Resolve[T any](t Type[T], n node.Node, opts ...Option) (T, *diagnostic.Diagnostics, error) {
	s := NewScope(opts...)

	v, err := t.Resolve(s, n)
	if err != nil {
		var zero T
		return zero, s.diags, err
	}

	return v, s.diags, nil
}
