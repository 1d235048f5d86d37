package node

//go:generate go tool stringer -type=Kind,ScalarKind -output=kind_string.go

// Kind identifies the structural shape of a Node.
type Kind int

const (
	_ Kind = iota // skip zero value, an unset Kind is invalid

	KindScalar
	KindSequence
	KindMapping
)

// ScalarKind identifies which primitive a Scalar holds.
type ScalarKind int

const (
	_ ScalarKind = iota

	ScalarString
	ScalarInt
	ScalarFloat
	ScalarBool
)
