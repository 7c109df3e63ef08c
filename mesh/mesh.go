// File: mesh.go
// Role: the Mesh type, construction, counts, and the element-count
//       bookkeeping every structural edit goes through.

package mesh

import (
	"fmt"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// Mesh is an in-memory polygonal surface. Construct with New; the zero
// value is not usable.
//
// All per-element data, including positions and facet topology, lives in
// the attribute set; Mesh itself holds only counts, the ids of the
// structural slots, and the lazily built connectivity.
type Mesh struct {
	dimension int

	numVertices int
	numFacets   int
	numCorners  int

	// vertexPerFacet is the uniform facet degree of a regular mesh, 0
	// while the mesh has no facets. Meaningless once hybrid is set.
	vertexPerFacet int
	hybrid         bool

	attrs *attr.Set

	posID           attr.ID
	cornerToVertID  attr.ID
	facetToCornerID attr.ID // InvalidID while regular
	cornerToFacetID attr.ID // InvalidID while regular

	conn *connectivity // nil until InitializeEdges
}

// New creates an empty mesh of the given dimension (default 3).
//
// Complexity: O(1).
func New(opts ...Option) *Mesh {
	cfg := config{dimension: 3}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.dimension != 2 && cfg.dimension != 3 {
		cfg.dimension = 3
	}

	m := &Mesh{
		dimension:       cfg.dimension,
		attrs:           attr.NewSet(),
		facetToCornerID: attr.InvalidID,
		cornerToFacetID: attr.InvalidID,
	}
	pos, err := m.attrs.Create(AttrVertexToPosition, attr.Vertex, attr.Position,
		cfg.dimension, buffer.Float64, attr.WithForceReserved())
	if err != nil {
		panic(fmt.Sprintf("mesh: creating position slot: %v", err))
	}
	c2v, err := m.attrs.Create(AttrCornerToVertex, attr.Corner, attr.VertexIndex,
		1, buffer.Uint32, attr.WithForceReserved())
	if err != nil {
		panic(fmt.Sprintf("mesh: creating corner-to-vertex slot: %v", err))
	}
	m.posID = pos.ID()
	m.cornerToVertID = c2v.ID()

	return m
}

// Dimension returns the coordinate dimension fixed at construction.
func (m *Mesh) Dimension() int { return m.dimension }

// NumVertices returns the vertex count.
func (m *Mesh) NumVertices() int { return m.numVertices }

// NumFacets returns the facet count.
func (m *Mesh) NumFacets() int { return m.numFacets }

// NumCorners returns the corner count (sum of facet sizes).
func (m *Mesh) NumCorners() int { return m.numCorners }

// NumEdges returns the edge count; zero until InitializeEdges.
func (m *Mesh) NumEdges() int {
	if m.conn == nil {
		return 0
	}

	return len(m.conn.edgeVertices) / 2
}

// positions returns the structural position attribute.
func (m *Mesh) positions() *attr.Attribute {
	a, err := m.attrs.GetByID(m.posID)
	if err != nil {
		panic("mesh: position slot missing")
	}

	return a
}

// cornerToVertex returns the structural corner-to-vertex attribute.
func (m *Mesh) cornerToVertex() *attr.Attribute {
	a, err := m.attrs.GetByID(m.cornerToVertID)
	if err != nil {
		panic("mesh: corner-to-vertex slot missing")
	}

	return a
}

// cornerVerts returns the corner-to-vertex buffer contents.
func (m *Mesh) cornerVerts() []uint32 {
	v, err := buffer.View[uint32](m.cornerToVertex().Values())
	if err != nil {
		panic("mesh: corner-to-vertex slot has wrong dtype")
	}

	return v
}

// elementCount returns the live count for an attribute element kind.
// Value/Indexed pools are caller-sized and report -1 (not tracked).
func (m *Mesh) elementCount(e attr.Element) int {
	switch e {
	case attr.Vertex:
		return m.numVertices
	case attr.Facet:
		return m.numFacets
	case attr.Corner:
		return m.numCorners
	case attr.Edge:
		return m.NumEdges()
	default:
		return -1
	}
}

// forEachAttr visits every live attribute, structural slots included.
func (m *Mesh) forEachAttr(visit func(*attr.Attribute) error) error {
	for _, id := range m.attrs.IDs() {
		a, err := m.attrs.GetByID(id)
		if err != nil {
			return err
		}
		if err = visit(a); err != nil {
			return err
		}
	}

	return nil
}

// growElement appends n default-filled entries to every attribute keyed on
// element e (index buffers too, when e is Corner). The caller has already
// verified growth feasibility via canGrowElement.
func (m *Mesh) growElement(e attr.Element, n int) error {
	return m.forEachAttr(func(a *attr.Attribute) error {
		if a.Element() == e {
			return a.InsertElements(n)
		}
		if e == attr.Corner && a.IsIndexed() {
			idx, err := a.Indices()
			if err != nil {
				return err
			}

			// New corners point at pool entry 0 until assigned.
			return idx.Resize(idx.Len()+n, 0)
		}

		return nil
	})
}

// canGrowElement reports whether every attribute keyed on element e can
// grow by n entries under its growth policy. Checking up front keeps edits
// atomic: no attribute is touched unless all of them can follow.
func (m *Mesh) canGrowElement(e attr.Element, n int) bool {
	ok := true
	_ = m.forEachAttr(func(a *attr.Attribute) error {
		if a.Element() == e && !a.Values().CanGrow(a.Values().Len()+n) {
			ok = false
		}
		if e == attr.Corner && a.IsIndexed() {
			if idx, err := a.Indices(); err == nil && !idx.CanGrow(idx.Len()+n) {
				ok = false
			}
		}

		return nil
	})

	return ok
}
