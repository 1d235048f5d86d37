// Package schema resolves generic document trees (package node) into
// strongly typed values using declarative type descriptions.
//
// # Building blocks
//
// Every description implements Type[T]: it can resolve a node into a T and
// encode a T back into a node, so one table drives both directions.
//
//   - Group: a product type, an ordered table of required and optional
//     fields, each with its own Type and an accessor into the Go struct
//   - Variant: a closed tagged union; a discriminant field (for example
//     "type" or "mode") selects exactly one arm, each arm being a Group
//   - KeyedBy: a list of elements turned into an ordered Collection, the key
//     of each element read from a designated attribute of that element
//   - Union: a small closed union without a discriminant (scalar or list,
//     flag or group), resolved by the first structurally matching alternative
//   - Leaves: String, Bool, Int, Uint, Uint16, Float, plus List and SetOf
//
// # Example
//
//	type ChangeDPI struct {
//	    Inc    int
//	    Sensor schema.Optional[int]
//	}
//
//	var changeDPI = schema.NewGroup("ChangeDPI",
//	    schema.Field("inc", schema.Int, func(a *ChangeDPI) *int { return &a.Inc }),
//	    schema.OptionalField("sensor", schema.Int, func(a *ChangeDPI) *schema.Optional[int] { return &a.Sensor }),
//	)
//
//	v, diags, err := schema.Resolve(changeDPI, n)
//
// # Errors
//
// Resolution is all-or-nothing. Structural failures are typed errors
// (MissingFieldError, UnknownVariantError, DuplicateKeyError, ...) wrapped
// by FieldError and ElementError at every level, so the message of the
// outermost error carries the full document path:
//
//	devices.mouse.profiles.default.buttons[0].action: unknown variant "Jump" for "type" of Action (valid: "None", "Keypress", ...)
//
// Unknown fields are the one exception: by default they are recorded as
// warnings in the returned diagnostic.Diagnostics and do not fail
// resolution. WithUnknownFields changes that policy.
//
// Resolution performs no I/O, holds no shared state and is safe to run
// concurrently; the type descriptions themselves are immutable once built.
package schema
