package schema

import (
	"errors"
	"fmt"
	"strconv"

	"logidconf/internal/common"
)

// MissingFieldError reports a required field absent from a mapping.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q of %s", e.Field, e.Type)
}

// UnknownFieldError reports a key no field declares. It is only returned
// under UnknownFieldsReject; otherwise the same finding is a warning.
type UnknownFieldError struct {
	Type  string
	Field string
	// Suggestion is the declared field the key most likely meant, if any.
	Suggestion string
}

func (e *UnknownFieldError) Error() string {
	return unknownField(e.Field, e.Type, e.Suggestion)
}

func unknownField(field, typ, suggestion string) string {
	msg := fmt.Sprintf("unknown field %q in %s", field, typ)
	if suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", suggestion)
	}

	return msg
}

// MissingDiscriminantError reports a tagged-union mapping without its tag.
type MissingDiscriminantError struct {
	Type  string
	Field string
}

func (e *MissingDiscriminantError) Error() string {
	return fmt.Sprintf("missing discriminant field %q of %s", e.Field, e.Type)
}

// UnknownVariantError reports a discriminant value no arm accepts.
type UnknownVariantError struct {
	Type  string
	Field string
	Value string
	// Valid lists the accepted values in declaration order.
	Valid []string
	// Suggestion is the valid value Value most likely meant, if any.
	Suggestion string
}

func (e *UnknownVariantError) Error() string {
	msg := fmt.Sprintf("unknown variant %q for %q of %s (valid: %s)",
		e.Value, e.Field, e.Type, common.QuoteJoin(e.Valid))
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", e.Suggestion)
	}

	return msg
}

// DuplicateKeyError reports two collection elements with the same key.
type DuplicateKeyError struct {
	Field string
	Key   any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s %s", e.Field, quoteValue(e.Key))
}

// NoMatchingAlternativeError reports a node matching no alternative of a union.
type NoMatchingAlternativeError struct {
	Type     string
	Expected []string
	Got      string
}

func (e *NoMatchingAlternativeError) Error() string {
	return fmt.Sprintf("%s matches no alternative of %s (expected one of: %s)",
		e.Got, e.Type, common.QuoteJoin(e.Expected))
}

// TypeMismatchError reports a node of the wrong shape or primitive kind.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// InvalidValueError reports a well-typed value outside its allowed range.
type InvalidValueError struct {
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %s: %s", e.Value, e.Reason)
}

// DanglingReferenceError reports a name that should select an entry of a
// sibling collection but selects none.
type DanglingReferenceError struct {
	Name   string
	Target string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%q does not name an entry of %s", e.Name, e.Target)
}

// FieldError attaches a field name to an error raised below it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return withPath(e) }
func (e *FieldError) Unwrap() error { return e.Err }

// ElementError attaches a list position, and the element key when known,
// to an error raised below it.
type ElementError struct {
	Index int
	Key   string
	Err   error
}

func (e *ElementError) Error() string { return withPath(e) }
func (e *ElementError) Unwrap() error { return e.Err }

// ErrorPath returns the document path accumulated by the FieldError and
// ElementError wrappers of err, outermost first. Wrappers without a path,
// such as fmt.Errorf with %w, are looked through until the first one.
func ErrorPath(err error) Path {
	p, _ := split(err)
	return p
}

// Cause returns the innermost error below all path wrappers. An error with
// no path at all unwraps to its innermost error.
func Cause(err error) error {
	_, cause := split(err)
	return cause
}

func split(err error) (Path, error) {
	var p Path

	for {
		switch e := err.(type) {
		case *FieldError:
			p = p.Field(e.Field)
			err = e.Err
		case *ElementError:
			p = p.Element(e.Index, e.Key)
			err = e.Err
		default:
			if next := errors.Unwrap(err); next != nil && p.IsRoot() {
				err = next
				continue
			}

			return p, err
		}
	}
}

func withPath(err error) string {
	p, cause := split(err)
	if cause == nil {
		return p.String()
	}

	return p.String() + ": " + cause.Error()
}

// quoteValue renders a scalar for error messages.
func quoteValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}

	return fmt.Sprint(v)
}
