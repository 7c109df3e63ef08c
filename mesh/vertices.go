// File: vertices.go
// Role: vertex lifecycle: AddVertex/AddVertices, coordinate access, and
//       external wrapping of the position buffer.

package mesh

import (
	"fmt"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// AddVertex appends one vertex with the given coordinates. len(p) must
// equal the mesh dimension.
//
// Complexity: amortized O(dimension) plus growth of other vertex attributes.
func (m *Mesh) AddVertex(p []float64) error {
	if len(p) != m.dimension {
		return fmt.Errorf("%w: %d coordinates for a %dD mesh", ErrInvalidArgument,
			len(p), m.dimension)
	}

	return m.AddVertices(p)
}

// AddVertices appends len(coords)/dimension vertices. Growth is
// policy-gated across every vertex attribute before anything is touched,
// so the operation is atomic.
func (m *Mesh) AddVertices(coords []float64) error {
	if len(coords)%m.dimension != 0 {
		return fmt.Errorf("%w: %d coordinates is not a multiple of dimension %d",
			ErrInvalidArgument, len(coords), m.dimension)
	}
	n := len(coords) / m.dimension
	if n == 0 {
		return nil
	}
	if !m.canGrowElement(attr.Vertex, n) {
		return fmt.Errorf("%w: a vertex attribute cannot grow by %d", buffer.ErrCapacity, n)
	}
	if err := m.growElement(attr.Vertex, n); err != nil {
		return err
	}
	view, err := buffer.ViewMut[float64](m.positions().Values())
	if err != nil {
		return err
	}
	copy(view[m.numVertices*m.dimension:], coords)
	m.numVertices += n

	// Isolated new vertices keep existing connectivity valid.
	if m.conn != nil {
		for i := 0; i < n; i++ {
			m.conn.vertexToFirstCorner = append(m.conn.vertexToFirstCorner, invalidIndex)
		}
	}

	return nil
}

// Position returns the coordinates of vertex v as a view into the position
// buffer. Treat as read-only; mutate through PositionsAttribute.
func (m *Mesh) Position(v int) ([]float64, error) {
	if v < 0 || v >= m.numVertices {
		return nil, fmt.Errorf("%w: vertex %d of %d", ErrInvalidArgument, v, m.numVertices)
	}
	view, err := buffer.View[float64](m.positions().Values())
	if err != nil {
		return nil, err
	}

	return view[v*m.dimension : (v+1)*m.dimension], nil
}

// PositionsAttribute returns the structural vertex-position attribute.
func (m *Mesh) PositionsAttribute() *attr.Attribute { return m.positions() }

// WrapVertices replaces the position storage with a view over the caller's
// coordinate slice holding numVertices·dimension scalars. Other vertex
// attributes are resized to the new count. The caller's memory stays
// caller-owned; set a growth policy on the returned attribute before
// adding vertices.
func (m *Mesh) WrapVertices(coords []float64, numVertices int) error {
	return m.wrapVertices(coords, numVertices, false)
}

// WrapConstVertices is WrapVertices with mutable access disabled on the
// wrapped buffer.
func (m *Mesh) WrapConstVertices(coords []float64, numVertices int) error {
	return m.wrapVertices(coords, numVertices, true)
}

func (m *Mesh) wrapVertices(coords []float64, numVertices int, readonly bool) error {
	var (
		b   *buffer.Buffer
		err error
	)
	if readonly {
		b, err = buffer.WrapConst(coords, numVertices, m.dimension)
	} else {
		b, err = buffer.Wrap(coords, numVertices, m.dimension)
	}
	if err != nil {
		return err
	}
	if numVertices != m.numVertices {
		// Pre-flight sibling resizes: nothing is touched unless every
		// other vertex attribute can follow the new count.
		ok := true
		_ = m.forEachAttr(func(a *attr.Attribute) error {
			if a.ID() != m.posID && a.Element() == attr.Vertex &&
				!a.Values().CanGrow(numVertices) {
				ok = false
			}

			return nil
		})
		if !ok {
			return fmt.Errorf("%w: a vertex attribute cannot follow the count %d",
				buffer.ErrCapacity, numVertices)
		}
	}
	if err = m.positions().Rewrap(b); err != nil {
		return err
	}
	old := m.numVertices
	m.numVertices = numVertices
	if old != numVertices {
		// Follow the count on every other vertex attribute.
		err = m.forEachAttr(func(a *attr.Attribute) error {
			if a.ID() == m.posID || a.Element() != attr.Vertex {
				return nil
			}

			return a.Values().Resize(numVertices, a.DefaultValue())
		})
		if err != nil {
			return err
		}
		m.clearConnectivity()
	}

	return nil
}

// ClearVertices removes every vertex, and with them every facet. Attribute
// definitions survive with zero elements.
func (m *Mesh) ClearVertices() error {
	if err := m.ClearFacets(); err != nil {
		return err
	}
	m.numVertices = 0

	return m.forEachAttr(func(a *attr.Attribute) error {
		if a.Element() == attr.Vertex {
			return a.Values().Resize(0, 0)
		}

		return nil
	})
}
