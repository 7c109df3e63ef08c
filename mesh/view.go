// File: view.go
// Role: row-major slice views over positions and facet indices.

package mesh

import (
	"fmt"

	"github.com/halveth/surfmesh/buffer"
)

// VertexView exposes the position storage as rows of coordinates. Rows
// are subslices of the live storage, so writes show up in the mesh; the
// view goes stale after any edit that rebuilds vertex storage.
type VertexView struct {
	data []float64
	dim  int
}

// VertexView returns a mutable row view over the positions. Fails with
// buffer.ErrReadOnly when the positions are wrapped const.
func (m *Mesh) VertexView() (VertexView, error) {
	data, err := buffer.ViewMut[float64](m.positions().Values())
	if err != nil {
		return VertexView{}, err
	}

	return VertexView{data: data, dim: m.dimension}, nil
}

// Len returns the number of rows.
func (v VertexView) Len() int { return len(v.data) / v.dim }

// Row returns the coordinates of vertex i, aliasing mesh storage.
func (v VertexView) Row(i int) []float64 {
	return v.data[i*v.dim : (i+1)*v.dim]
}

// FacetView exposes the corner-to-vertex storage of a regular mesh as
// rows of vertex indices, one row per facet.
type FacetView struct {
	data []uint32
	size int
}

// FacetView returns a row view over the facet indices. Only regular
// meshes have fixed-width rows; a hybrid mesh fails with
// ErrInvalidArgument (walk FacetVertices instead).
func (m *Mesh) FacetView() (FacetView, error) {
	if m.hybrid {
		return FacetView{}, fmt.Errorf("%w: hybrid mesh has no fixed facet width",
			ErrInvalidArgument)
	}
	if m.numFacets == 0 {
		return FacetView{}, nil
	}

	return FacetView{data: m.cornerVerts(), size: m.vertexPerFacet}, nil
}

// Len returns the number of rows.
func (v FacetView) Len() int {
	if v.size == 0 {
		return 0
	}

	return len(v.data) / v.size
}

// Row returns the vertex indices of facet f, aliasing mesh storage.
// Writing through the row changes topology without any validation;
// callers doing so should re-run InitializeEdges afterwards.
func (v FacetView) Row(f int) []uint32 {
	return v.data[f*v.size : (f+1)*v.size]
}
