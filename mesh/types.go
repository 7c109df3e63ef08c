// File: types.go
// Role: sentinel errors, reserved attribute names, construction options,
//       and small shared constants for the mesh package.

package mesh

import "errors"

// Sentinel errors for mesh operations.
var (
	// ErrInvalidArgument indicates a missing or ambiguous parameter, a
	// dimension mismatch, or a coordinate/index count remainder.
	ErrInvalidArgument = errors.New("mesh: invalid argument")
	// ErrInvalidMapping indicates a vertex remap whose target range has a
	// gap or references an out-of-range vertex.
	ErrInvalidMapping = errors.New("mesh: invalid vertex mapping")
	// ErrInvalidPermutation indicates a permutation with a duplicate or
	// missing index.
	ErrInvalidPermutation = errors.New("mesh: invalid permutation")
	// ErrInconsistentTopology indicates a facet vertex index out of range,
	// or a user-supplied edge list contradicting the facet incidence.
	ErrInconsistentTopology = errors.New("mesh: inconsistent topology")
	// ErrEdgesNotInitialized indicates a connectivity-dependent query was
	// made before InitializeEdges.
	ErrEdgesNotInitialized = errors.New("mesh: edges not initialized")
)

// Reserved attribute names for the mesh's structural slots.
const (
	// AttrVertexToPosition is the vertex-position attribute name.
	AttrVertexToPosition = "$vertex_to_position"
	// AttrCornerToVertex is the corner-to-vertex topology attribute name.
	AttrCornerToVertex = "$corner_to_vertex"
	// AttrFacetToFirstCorner is the hybrid per-facet offset attribute name.
	AttrFacetToFirstCorner = "$facet_to_first_corner"
	// AttrCornerToFacet is the hybrid corner-to-facet attribute name.
	AttrCornerToFacet = "$corner_to_facet"
)

// invalidIndex is the in-band sentinel terminating corner chains.
const invalidIndex = ^uint32(0)

// Option configures mesh construction.
type Option func(*config)

type config struct {
	dimension int
}

// WithDimension fixes the vertex coordinate dimension (2 or 3; default 3).
func WithDimension(dim int) Option {
	return func(c *config) { c.dimension = dim }
}
