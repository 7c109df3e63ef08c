// File: clone.go
// Role: deep and shallow mesh duplication.

package mesh

// Clone returns a deep copy: every attribute buffer in the clone is
// Internal regardless of the source's ownership mode, and the clone
// shares no mutable memory with the source.
//
// Complexity: O(total attribute storage).
func (m *Mesh) Clone() *Mesh {
	out := m.header()
	out.attrs = m.attrs.Clone(true)
	out.conn = m.conn.clone()

	return out
}

// ShallowCopy returns a copy sharing every attribute buffer with the
// source (mutations through either mesh are visible in both) while
// keeping a distinct identity: its attribute-set membership and lifecycle
// are independent, so deleting an attribute on one side leaves the other
// untouched.
//
// Count-changing edits on either copy rebuild storage and thereby stop
// sharing the rebuilt element kinds; in-place value edits stay shared.
func (m *Mesh) ShallowCopy() *Mesh {
	out := m.header()
	out.attrs = m.attrs.Clone(false)
	out.conn = m.conn.clone()

	return out
}

// header copies the scalar fields of the mesh.
func (m *Mesh) header() *Mesh {
	return &Mesh{
		dimension:       m.dimension,
		numVertices:     m.numVertices,
		numFacets:       m.numFacets,
		numCorners:      m.numCorners,
		vertexPerFacet:  m.vertexPerFacet,
		hybrid:          m.hybrid,
		posID:           m.posID,
		cornerToVertID:  m.cornerToVertID,
		facetToCornerID: m.facetToCornerID,
		cornerToFacetID: m.cornerToFacetID,
	}
}

// clone deep-copies the connectivity; nil stays nil. Connectivity is
// derived data, so even shallow mesh copies get their own copy.
func (c *connectivity) clone() *connectivity {
	if c == nil {
		return nil
	}

	return &connectivity{
		edgeVertices:           append([]uint32(nil), c.edgeVertices...),
		cornerToEdge:           append([]uint32(nil), c.cornerToEdge...),
		edgeToFirstCorner:      append([]uint32(nil), c.edgeToFirstCorner...),
		nextCornerAroundEdge:   append([]uint32(nil), c.nextCornerAroundEdge...),
		vertexToFirstCorner:    append([]uint32(nil), c.vertexToFirstCorner...),
		nextCornerAroundVertex: append([]uint32(nil), c.nextCornerAroundVertex...),
	}
}
