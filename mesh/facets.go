// File: facets.go
// Role: facet lifecycle & queries: AddTriangle/AddQuad/AddPolygon and bulk
//       variants, the regular→hybrid promotion, and the corner↔facet↔vertex
//       maps.
// Determinism:
//   - Corner ids run in facet-then-local-index order, always.
//   - Promotion to hybrid is automatic on the first mixed-degree facet and
//     permanent until CompressIfRegular.

package mesh

import (
	"fmt"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// AddTriangle appends one triangular facet.
func (m *Mesh) AddTriangle(v0, v1, v2 int) error {
	return m.AddPolygon([]int{v0, v1, v2})
}

// AddTriangles appends len(indices)/3 triangular facets.
func (m *Mesh) AddTriangles(indices []int) error {
	return m.addUniform(3, indices)
}

// AddQuad appends one quadrilateral facet.
func (m *Mesh) AddQuad(v0, v1, v2, v3 int) error {
	return m.AddPolygon([]int{v0, v1, v2, v3})
}

// AddQuads appends len(indices)/4 quadrilateral facets.
func (m *Mesh) AddQuads(indices []int) error {
	return m.addUniform(4, indices)
}

// AddPolygon appends one facet with the given vertex loop (size ≥ 3).
func (m *Mesh) AddPolygon(indices []int) error {
	if len(indices) < 3 {
		return fmt.Errorf("%w: facet of size %d", ErrInvalidArgument, len(indices))
	}

	return m.addUniform(len(indices), indices)
}

// AddPolygons appends len(indices)/facetSize facets of uniform degree.
func (m *Mesh) AddPolygons(facetSize int, indices []int) error {
	return m.addUniform(facetSize, indices)
}

// AddHybrid appends one facet per entry of sizes, consuming flat
// row-by-row. Mixing degrees promotes the mesh to the hybrid encoding.
func (m *Mesh) AddHybrid(sizes []int, flat []int) error {
	total := 0
	uniform := true
	for _, s := range sizes {
		if s < 3 {
			return fmt.Errorf("%w: facet of size %d", ErrInvalidArgument, s)
		}
		if s != sizes[0] {
			uniform = false
		}
		total += s
	}
	if total != len(flat) {
		return fmt.Errorf("%w: sizes sum to %d, got %d indices", ErrInvalidArgument,
			total, len(flat))
	}
	if len(sizes) == 0 {
		return nil
	}
	if uniform {
		return m.addUniform(sizes[0], flat)
	}

	return m.addFacets(sizes, flat)
}

// WrapFacets replaces facet storage with a view over the caller's flat
// corner-to-vertex slice holding numFacets·vertexPerFacet indices. The
// mesh reverts to the regular encoding; other facet and corner attributes
// are resized to the new counts. The caller's memory stays caller-owned;
// set a growth policy on the corner-to-vertex attribute before adding
// facets.
func (m *Mesh) WrapFacets(flat []uint32, numFacets, vertexPerFacet int) error {
	return m.wrapFacets(flat, numFacets, vertexPerFacet, false)
}

// WrapConstFacets is WrapFacets with mutable access disabled on the
// wrapped buffer.
func (m *Mesh) WrapConstFacets(flat []uint32, numFacets, vertexPerFacet int) error {
	return m.wrapFacets(flat, numFacets, vertexPerFacet, true)
}

func (m *Mesh) wrapFacets(flat []uint32, numFacets, vertexPerFacet int, readonly bool) error {
	if vertexPerFacet < 3 {
		return fmt.Errorf("%w: facet size %d", ErrInvalidArgument, vertexPerFacet)
	}
	if numFacets < 0 {
		return fmt.Errorf("%w: %d facets", ErrInvalidArgument, numFacets)
	}
	numCorners := numFacets * vertexPerFacet
	var (
		b   *buffer.Buffer
		err error
	)
	if readonly {
		b, err = buffer.WrapConst(flat, numCorners, 1)
	} else {
		b, err = buffer.Wrap(flat, numCorners, 1)
	}
	if err != nil {
		return err
	}
	for _, v := range flat[:numCorners] {
		if int(v) >= m.numVertices {
			return fmt.Errorf("%w: facet vertex %d of %d vertices",
				ErrInconsistentTopology, v, m.numVertices)
		}
	}
	// Pre-flight sibling resizes: nothing is touched unless every other
	// facet and corner attribute can follow the new counts.
	ok := true
	_ = m.forEachAttr(func(a *attr.Attribute) error {
		if a.ID() == m.cornerToVertID || a.ID() == m.facetToCornerID ||
			a.ID() == m.cornerToFacetID {
			return nil
		}
		switch {
		case a.Element() == attr.Facet && !a.Values().CanGrow(numFacets):
			ok = false
		case a.Element() == attr.Corner && !a.Values().CanGrow(numCorners):
			ok = false
		case a.IsIndexed():
			if idx, iErr := a.Indices(); iErr == nil && !idx.CanGrow(numCorners) {
				ok = false
			}
		}

		return nil
	})
	if !ok {
		return fmt.Errorf("%w: a facet or corner attribute cannot follow the wrapped counts",
			buffer.ErrCapacity)
	}

	if err = m.cornerToVertex().Rewrap(b); err != nil {
		return err
	}
	if m.hybrid {
		if err = m.attrs.ForceDelete(AttrFacetToFirstCorner); err != nil {
			return err
		}
		if err = m.attrs.ForceDelete(AttrCornerToFacet); err != nil {
			return err
		}
		m.facetToCornerID = attr.InvalidID
		m.cornerToFacetID = attr.InvalidID
		m.hybrid = false
	}
	m.numFacets = numFacets
	m.numCorners = numCorners
	m.vertexPerFacet = vertexPerFacet
	if numFacets == 0 {
		m.vertexPerFacet = 0
	}

	err = m.forEachAttr(func(a *attr.Attribute) error {
		switch {
		case a.Element() == attr.Facet:
			return a.Values().Resize(numFacets, a.DefaultValue())
		case a.Element() == attr.Corner && a.ID() != m.cornerToVertID:
			return a.Values().Resize(numCorners, a.DefaultValue())
		case a.IsIndexed():
			idx, iErr := a.Indices()
			if iErr != nil {
				return iErr
			}

			return idx.Resize(numCorners, 0)
		}

		return nil
	})
	if err != nil {
		return err
	}
	m.clearConnectivity()

	return nil
}

func (m *Mesh) addUniform(facetSize int, indices []int) error {
	if facetSize < 3 {
		return fmt.Errorf("%w: facet size %d", ErrInvalidArgument, facetSize)
	}
	if len(indices)%facetSize != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of facet size %d",
			ErrInvalidArgument, len(indices), facetSize)
	}
	n := len(indices) / facetSize
	if n == 0 {
		return nil
	}
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = facetSize
	}

	return m.addFacets(sizes, indices)
}

// addFacets is the single append path behind every Add* facet method.
// Validation happens before any mutation; the edit is atomic.
func (m *Mesh) addFacets(sizes []int, flat []int) error {
	for _, v := range flat {
		if v < 0 || v >= m.numVertices {
			return fmt.Errorf("%w: facet vertex %d of %d vertices",
				ErrInconsistentTopology, v, m.numVertices)
		}
	}
	nf := len(sizes)
	nc := len(flat)

	needHybrid := m.hybrid
	if !needHybrid {
		deg := m.vertexPerFacet
		if deg == 0 {
			deg = sizes[0]
		}
		for _, s := range sizes {
			if s != deg {
				needHybrid = true

				break
			}
		}
	}
	if !m.canGrowElement(attr.Facet, nf) || !m.canGrowElement(attr.Corner, nc) {
		return fmt.Errorf("%w: a facet or corner attribute cannot grow", buffer.ErrCapacity)
	}
	if needHybrid && !m.hybrid {
		if err := m.promoteToHybrid(); err != nil {
			return err
		}
	}
	if m.numFacets == 0 && !m.hybrid {
		m.vertexPerFacet = sizes[0]
	}

	if err := m.growElement(attr.Facet, nf); err != nil {
		return err
	}
	if err := m.growElement(attr.Corner, nc); err != nil {
		return err
	}

	c2v, err := buffer.ViewMut[uint32](m.cornerToVertex().Values())
	if err != nil {
		return err
	}
	for i, v := range flat {
		c2v[m.numCorners+i] = uint32(v)
	}

	if m.hybrid {
		f2c, cErr := m.hybridOffsets()
		if cErr != nil {
			return cErr
		}
		c2f, fErr := m.hybridCornerFacets()
		if fErr != nil {
			return fErr
		}
		corner := m.numCorners
		for i, s := range sizes {
			f2c[m.numFacets+i] = uint32(corner)
			for j := 0; j < s; j++ {
				c2f[corner+j] = uint32(m.numFacets + i)
			}
			corner += s
		}
	}

	m.numFacets += nf
	m.numCorners += nc
	m.clearConnectivity()

	return nil
}

// promoteToHybrid switches the mesh to the offsets+flat encoding, deriving
// the per-facet offsets and corner-to-facet map from the uniform degree.
func (m *Mesh) promoteToHybrid() error {
	offsets := make([]uint32, m.numFacets)
	facets := make([]uint32, m.numCorners)
	for f := 0; f < m.numFacets; f++ {
		offsets[f] = uint32(f * m.vertexPerFacet)
		for lv := 0; lv < m.vertexPerFacet; lv++ {
			facets[f*m.vertexPerFacet+lv] = uint32(f)
		}
	}

	f2c, err := m.attrs.Create(AttrFacetToFirstCorner, attr.Facet, attr.CornerIndex,
		1, buffer.Uint32, attr.WithForceReserved())
	if err != nil {
		return err
	}
	if err = attr.InsertValues(f2c, offsets); err != nil {
		return err
	}
	c2f, err := m.attrs.Create(AttrCornerToFacet, attr.Corner, attr.FacetIndex,
		1, buffer.Uint32, attr.WithForceReserved())
	if err != nil {
		return err
	}
	if err = attr.InsertValues(c2f, facets); err != nil {
		return err
	}
	m.facetToCornerID = f2c.ID()
	m.cornerToFacetID = c2f.ID()
	m.hybrid = true
	m.vertexPerFacet = 0

	return nil
}

// CompressIfRegular reverts a hybrid mesh whose facets all share one
// degree back to the compact regular encoding. No-op otherwise.
func (m *Mesh) CompressIfRegular() error {
	if !m.hybrid || m.numFacets == 0 {
		return nil
	}
	deg := m.FacetSize(0)
	for f := 1; f < m.numFacets; f++ {
		if m.FacetSize(f) != deg {
			return nil
		}
	}
	if err := m.attrs.ForceDelete(AttrFacetToFirstCorner); err != nil {
		return err
	}
	if err := m.attrs.ForceDelete(AttrCornerToFacet); err != nil {
		return err
	}
	m.facetToCornerID = attr.InvalidID
	m.cornerToFacetID = attr.InvalidID
	m.hybrid = false
	m.vertexPerFacet = deg

	return nil
}

// IsRegular reports whether every facet shares one degree (true for the
// empty mesh).
func (m *Mesh) IsRegular() bool { return !m.hybrid }

// IsHybrid reports whether the mesh uses the offsets+flat encoding.
func (m *Mesh) IsHybrid() bool { return m.hybrid }

// IsTriangleMesh reports whether the mesh is regular with degree 3.
func (m *Mesh) IsTriangleMesh() bool { return !m.hybrid && m.vertexPerFacet == 3 }

// IsQuadMesh reports whether the mesh is regular with degree 4.
func (m *Mesh) IsQuadMesh() bool { return !m.hybrid && m.vertexPerFacet == 4 }

// VertexPerFacet returns the uniform facet degree, or 0 for hybrid or
// empty meshes.
func (m *Mesh) VertexPerFacet() int {
	if m.hybrid {
		return 0
	}

	return m.vertexPerFacet
}

func (m *Mesh) hybridOffsets() ([]uint32, error) {
	a, err := m.attrs.GetByID(m.facetToCornerID)
	if err != nil {
		return nil, err
	}

	return buffer.ViewMut[uint32](a.Values())
}

func (m *Mesh) hybridCornerFacets() ([]uint32, error) {
	a, err := m.attrs.GetByID(m.cornerToFacetID)
	if err != nil {
		return nil, err
	}

	return buffer.ViewMut[uint32](a.Values())
}

// FacetCornerBegin returns the first corner id of facet f.
func (m *Mesh) FacetCornerBegin(f int) int {
	if m.hybrid {
		off, err := m.hybridOffsets()
		if err != nil {
			panic("mesh: hybrid offsets missing")
		}

		return int(off[f])
	}

	return f * m.vertexPerFacet
}

// FacetCornerEnd returns one past the last corner id of facet f.
func (m *Mesh) FacetCornerEnd(f int) int {
	if m.hybrid {
		off, err := m.hybridOffsets()
		if err != nil {
			panic("mesh: hybrid offsets missing")
		}
		if f+1 < m.numFacets {
			return int(off[f+1])
		}

		return m.numCorners
	}

	return (f + 1) * m.vertexPerFacet
}

// FacetSize returns the vertex count of facet f.
func (m *Mesh) FacetSize(f int) int {
	return m.FacetCornerEnd(f) - m.FacetCornerBegin(f)
}

// FacetVertices returns the vertex loop of facet f as a view into the
// corner-to-vertex buffer. Treat as read-only.
func (m *Mesh) FacetVertices(f int) ([]uint32, error) {
	if f < 0 || f >= m.numFacets {
		return nil, fmt.Errorf("%w: facet %d of %d", ErrInvalidArgument, f, m.numFacets)
	}

	return m.cornerVerts()[m.FacetCornerBegin(f):m.FacetCornerEnd(f)], nil
}

// FacetVertex returns the lv-th vertex of facet f.
func (m *Mesh) FacetVertex(f, lv int) (int, error) {
	verts, err := m.FacetVertices(f)
	if err != nil {
		return 0, err
	}
	if lv < 0 || lv >= len(verts) {
		return 0, fmt.Errorf("%w: local index %d of %d", ErrInvalidArgument, lv, len(verts))
	}

	return int(verts[lv]), nil
}

// CornerVertex returns the vertex corner c sits on.
func (m *Mesh) CornerVertex(c int) (int, error) {
	if c < 0 || c >= m.numCorners {
		return 0, fmt.Errorf("%w: corner %d of %d", ErrInvalidArgument, c, m.numCorners)
	}

	return int(m.cornerVerts()[c]), nil
}

// CornerFacet returns the facet corner c belongs to.
func (m *Mesh) CornerFacet(c int) (int, error) {
	if c < 0 || c >= m.numCorners {
		return 0, fmt.Errorf("%w: corner %d of %d", ErrInvalidArgument, c, m.numCorners)
	}
	if !m.hybrid {
		return c / m.vertexPerFacet, nil
	}
	c2f, err := m.hybridCornerFacets()
	if err != nil {
		return 0, err
	}

	return int(c2f[c]), nil
}

// ClearFacets removes every facet and corner. Attribute definitions
// survive with zero elements; connectivity is dropped.
func (m *Mesh) ClearFacets() error {
	err := m.forEachAttr(func(a *attr.Attribute) error {
		switch {
		case a.Element() == attr.Facet || a.Element() == attr.Corner:
			return a.Values().Resize(0, 0)
		case a.IsIndexed():
			idx, iErr := a.Indices()
			if iErr != nil {
				return iErr
			}

			return idx.Resize(0, 0)
		}

		return nil
	})
	if err != nil {
		return err
	}
	m.numFacets = 0
	m.numCorners = 0
	if !m.hybrid {
		m.vertexPerFacet = 0
	}
	m.clearConnectivity()

	return nil
}

// ShrinkToFit drops slack capacity on every internally-owned attribute
// buffer.
func (m *Mesh) ShrinkToFit() {
	_ = m.forEachAttr(func(a *attr.Attribute) error {
		a.Values().ShrinkToFit()
		if idx, err := a.Indices(); err == nil {
			idx.ShrinkToFit()
		}

		return nil
	})
}
