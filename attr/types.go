// File: types.go
// Role: ID, Element and Usage enums, channel-compatibility rules, reserved
//       name sentinel, and the package's sentinel errors.

package attr

import (
	"errors"
	"math"
	"strings"
)

// Sentinel errors for attribute operations.
var (
	// ErrAttributeNotFound indicates a name/id lookup miss, or access
	// through a handle whose attribute was deleted.
	ErrAttributeNotFound = errors.New("attr: attribute not found")
	// ErrAttributeExists indicates a create or rename collided with an
	// existing name.
	ErrAttributeExists = errors.New("attr: attribute name already exists")
	// ErrReservedName indicates a '$'-prefixed name was used without the
	// force option.
	ErrReservedName = errors.New("attr: reserved attribute name")
	// ErrNotIndexed indicates index-buffer access on a non-indexed
	// attribute.
	ErrNotIndexed = errors.New("attr: attribute is not indexed")
	// ErrInvalidArgument indicates an incompatible channel count, scalar
	// type, or a missing required parameter.
	ErrInvalidArgument = errors.New("attr: invalid argument")
)

// ID identifies an attribute within one Set. IDs are dense small integers
// assigned in creation order and never recycled within the Set's lifetime.
type ID uint32

// InvalidID is the sentinel for "no attribute".
const InvalidID ID = math.MaxUint32

// ReservedPrefix marks internal/derived attribute names ("$vertex_to_position").
// Reserved attributes are excluded from default serialization by the I/O
// collaborators and are protected from accidental create/delete.
const ReservedPrefix = "$"

// IsReservedName reports whether name carries the reserved prefix.
func IsReservedName(name string) bool {
	return strings.HasPrefix(name, ReservedPrefix)
}

// Element is the kind of mesh element an attribute is attached to.
type Element uint8

const (
	// Vertex attributes hold one element per mesh vertex.
	Vertex Element = iota
	// Facet attributes hold one element per mesh facet.
	Facet
	// Edge attributes hold one element per mesh edge.
	Edge
	// Corner attributes hold one element per mesh corner.
	Corner
	// Value attributes are free-standing pools, not tied to a mesh count.
	// Indexed attributes use one as their value buffer.
	Value
	// Indexed attributes pair a Value pool with a per-corner index buffer.
	Indexed

	numElements
)

var elementNames = [numElements]string{"vertex", "facet", "edge", "corner", "value", "indexed"}

// String returns the lowercase element name.
func (e Element) String() string {
	if e >= numElements {
		return "invalid"
	}

	return elementNames[e]
}

// Usage hints how an attribute behaves under mesh transformations. The tag
// constrains the channel count but not the storage layout.
type Usage uint8

const (
	// Vector attributes may have any channel count (including 1).
	Vector Usage = iota
	// Scalar attributes have exactly 1 channel.
	Scalar
	// Normal attributes have 2, 3 or 4 channels and transform as directions.
	Normal
	// Tangent attributes have 2, 3 or 4 channels and transform as directions.
	Tangent
	// Bitangent attributes have 2, 3 or 4 channels and transform as directions.
	Bitangent
	// Color attributes have 1 to 4 channels.
	Color
	// UV attributes have exactly 2 channels.
	UV
	// Position attributes have 2 or 3 channels and transform as points.
	Position
	// VertexIndex is a single-channel integer attribute indexing a vertex.
	VertexIndex
	// FacetIndex is a single-channel integer attribute indexing a facet.
	FacetIndex
	// CornerIndex is a single-channel integer attribute indexing a corner.
	CornerIndex
	// EdgeIndex is a single-channel integer attribute indexing an edge.
	EdgeIndex

	numUsages
)

var usageNames = [numUsages]string{
	"vector", "scalar", "normal", "tangent", "bitangent",
	"color", "uv", "position",
	"vertex_index", "facet_index", "corner_index", "edge_index",
}

// String returns the lowercase usage name.
func (u Usage) String() string {
	if u >= numUsages {
		return "invalid"
	}

	return usageNames[u]
}

// IsDirection reports whether u transforms as a direction (re-derived by
// mesh transforms instead of being transported as-is).
func (u Usage) IsDirection() bool {
	return u == Normal || u == Tangent || u == Bitangent
}

// IsIndex reports whether u indexes another mesh element.
func (u Usage) IsIndex() bool {
	return u == VertexIndex || u == FacetIndex || u == CornerIndex || u == EdgeIndex
}

// checkChannels validates the channel count against the usage tag.
func (u Usage) checkChannels(ch int) bool {
	switch u {
	case Scalar, VertexIndex, FacetIndex, CornerIndex, EdgeIndex:
		return ch == 1
	case UV:
		return ch == 2
	case Normal, Tangent, Bitangent:
		return ch >= 2 && ch <= 4
	case Color:
		return ch >= 1 && ch <= 4
	case Position:
		return ch == 2 || ch == 3
	default: // Vector
		return ch >= 1
	}
}
