package schema

import (
	"slices"
	"strconv"
	"strings"
)

type segmentKind int

const (
	segmentField segmentKind = iota
	segmentIndex
	segmentKey
)

type segment struct {
	kind  segmentKind
	name  string
	index int
}

// Path locates a node inside a document, e.g. "devices.mouse.buttons[0].action".
// Elements of string-keyed collections are addressed by key, other list
// elements by index. The zero value is the document root.
type Path struct {
	segments []segment
}

// Field returns the path of a named child.
func (p Path) Field(name string) Path {
	return p.with(segment{kind: segmentField, name: name})
}

// Element returns the path of a list element. A non-empty key addresses the
// element by name instead of by position.
func (p Path) Element(index int, key string) Path {
	if key != "" {
		return p.with(segment{kind: segmentKey, name: key, index: index})
	}

	return p.with(segment{kind: segmentIndex, index: index})
}

func (p Path) with(seg segment) Path {
	return Path{segments: append(slices.Clip(p.segments), seg)}
}

// IsRoot reports whether the path points at the document root.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// String renders the path. Names that are not plain identifiers are quoted.
func (p Path) String() string {
	var b strings.Builder

	for _, seg := range p.segments {
		switch seg.kind {
		case segmentIndex:
			b.WriteString("[" + strconv.Itoa(seg.index) + "]")
		case segmentField, segmentKey:
			if !isValidIdent(seg.name) {
				b.WriteString("[" + strconv.Quote(seg.name) + "]")
				continue
			}

			if b.Len() > 0 {
				b.WriteByte('.')
			}

			b.WriteString(seg.name)
		}
	}

	return b.String()
}

// isValidIdent checks if a string is a plain identifier (dashes allowed).
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, underscore or dash
			if !isLetter(r) && !isDigit(r) && r != '_' && r != '-' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
