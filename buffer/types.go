// Package buffer defines scalar type tags, ownership and growth-policy
// enums, and sentinel errors for attribute storage.
package buffer

import "errors"

// Sentinel errors for buffer operations.
var (
	// ErrInvalidArgument indicates a nil data pointer with nonzero count,
	// overflowing extents, or a negative size.
	ErrInvalidArgument = errors.New("buffer: invalid argument")
	// ErrTypeMismatch indicates a typed accessor was instantiated with a
	// scalar type different from the buffer's tag.
	ErrTypeMismatch = errors.New("buffer: scalar type mismatch")
	// ErrCapacity indicates growth was rejected by the active growth policy.
	ErrCapacity = errors.New("buffer: growth exceeds capacity policy")
	// ErrReadOnly indicates mutable access to a read-only external view.
	ErrReadOnly = errors.New("buffer: buffer is read-only")
)

// ScalarType tags the fixed set of numeric scalar types a Buffer can hold.
type ScalarType uint8

const (
	// Int8 is a signed 8-bit integer scalar.
	Int8 ScalarType = iota
	// Int16 is a signed 16-bit integer scalar.
	Int16
	// Int32 is a signed 32-bit integer scalar.
	Int32
	// Int64 is a signed 64-bit integer scalar.
	Int64
	// Uint8 is an unsigned 8-bit integer scalar.
	Uint8
	// Uint16 is an unsigned 16-bit integer scalar.
	Uint16
	// Uint32 is an unsigned 32-bit integer scalar.
	Uint32
	// Uint64 is an unsigned 64-bit integer scalar.
	Uint64
	// Float32 is a 32-bit IEEE-754 scalar.
	Float32
	// Float64 is a 64-bit IEEE-754 scalar.
	Float64

	numScalarTypes
)

// scalarSizes[t] is the byte width of scalar type t.
var scalarSizes = [numScalarTypes]int{1, 2, 4, 8, 1, 2, 4, 8, 4, 8}

// scalarNames[t] is the canonical textual name of scalar type t.
var scalarNames = [numScalarTypes]string{
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"float32", "float64",
}

// Size returns the byte width of one scalar of type t, or 0 if t is not a
// valid tag.
func (t ScalarType) Size() int {
	if !t.Valid() {
		return 0
	}

	return scalarSizes[t]
}

// Valid reports whether t is one of the ten defined scalar tags.
func (t ScalarType) Valid() bool { return t < numScalarTypes }

// IsFloat reports whether t is Float32 or Float64.
func (t ScalarType) IsFloat() bool { return t == Float32 || t == Float64 }

// IsInteger reports whether t is one of the eight integer tags.
func (t ScalarType) IsInteger() bool { return t.Valid() && !t.IsFloat() }

// String returns the canonical name of t ("int8", ..., "float64").
func (t ScalarType) String() string {
	if !t.Valid() {
		return "invalid"
	}

	return scalarNames[t]
}

// Ownership describes who owns a Buffer's backing memory.
type Ownership uint8

const (
	// Internal means the buffer allocated its storage and may reallocate.
	Internal Ownership = iota
	// External means the buffer is a view over caller-supplied memory;
	// the caller must keep that memory alive for every use through the
	// buffer, and the buffer never frees it.
	External
)

// String returns "internal" or "external".
func (o Ownership) String() string {
	if o == External {
		return "external"
	}

	return "internal"
}

// GrowthPolicy decides what happens when a Resize needs more scalars than
// an External buffer currently holds. Internal buffers always grow freely.
type GrowthPolicy uint8

const (
	// ErrorOnGrowth rejects any growth of an external buffer with
	// ErrCapacity. This is the default and the safest policy.
	ErrorOnGrowth GrowthPolicy = iota
	// AllowWithinCapacity grows in place as long as the new logical size
	// fits the capacity of the caller's slice; the caller observes the new
	// elements through its own reference. Growth past capacity is
	// ErrCapacity.
	AllowWithinCapacity
	// WarnAndCopy copies the contents into fresh Internal storage on
	// growth, severing the external view. The transition is observable via
	// Ownership().
	WarnAndCopy
	// AllowWholesale reallocates freely even if External, severing the
	// external view without copying ceremony.
	AllowWholesale
)

// String returns the policy's canonical name.
func (p GrowthPolicy) String() string {
	switch p {
	case AllowWithinCapacity:
		return "allow-within-capacity"
	case WarnAndCopy:
		return "warn-and-copy"
	case AllowWholesale:
		return "allow-wholesale"
	default:
		return "error-on-growth"
	}
}

// Scalar is the closed constraint over the ten storable scalar types.
// The set is exact (no ~) so each type parameter maps to one ScalarType tag.
type Scalar interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}
