// File: attributes_test.go
// Role: attribute registration, element inference, indexed storage and
//       wrapping checks at the mesh level.

package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
	"github.com/halveth/surfmesh/mesh"
	"github.com/halveth/surfmesh/shapes"
)

func TestCreateAttribute_SizedToElement(t *testing.T) {
	m := shapes.Tetrahedron()

	tests := []struct {
		name    string
		element attr.Element
		want    int
	}{
		{"v", attr.Vertex, 4},
		{"f", attr.Facet, 4},
		{"c", attr.Corner, 12},
	}
	for _, tc := range tests {
		id, err := m.CreateAttribute(tc.name, tc.element, attr.Scalar, 1,
			buffer.Float64, attr.WithDefaultValue(7))
		require.NoError(t, err)
		a, err := m.GetAttributeByID(id)
		require.NoError(t, err)
		require.Equal(t, tc.want, a.Len())
		v, err := a.Values().GetFloat(tc.want-1, 0)
		require.NoError(t, err)
		require.Equal(t, 7.0, v, "new entries carry the default value")
	}
}

func TestCreateAttributeFrom_InfersElement(t *testing.T) {
	m, err := shapes.Grid(2, 1) // 6 vertices, 2 facets, 8 corners
	require.NoError(t, err)

	id, err := mesh.CreateAttributeFrom(m, "uv", attr.UV, 2,
		make([]float64, 12))
	require.NoError(t, err)
	a, err := m.GetAttributeByID(id)
	require.NoError(t, err)
	require.Equal(t, attr.Vertex, a.Element())

	id, err = mesh.CreateAttributeFrom(m, "area", attr.Scalar, 1,
		[]float64{1, 1})
	require.NoError(t, err)
	a, err = m.GetAttributeByID(id)
	require.NoError(t, err)
	require.Equal(t, attr.Facet, a.Element())
}

func TestCreateAttributeFrom_AmbiguousCount(t *testing.T) {
	m := shapes.Tetrahedron() // 4 vertices AND 4 facets

	_, err := mesh.CreateAttributeFrom(m, "x", attr.Scalar, 1,
		[]float64{1, 2, 3, 4})
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)

	_, err = mesh.CreateAttributeFrom(m, "x", attr.Scalar, 1,
		[]float64{1, 2, 3, 4, 5})
	require.ErrorIs(t, err, mesh.ErrInvalidArgument, "count matches nothing")
}

func TestIndexedAttribute_RoundTrip(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))
	require.NoError(t, m.AddTriangles([]int{0, 1, 2, 0, 2, 3}))

	pool := []float64{0, 0, 1, 0, 1, 1, 0, 1} // 4 uv values
	indices := []uint32{0, 1, 2, 0, 2, 3}
	id, err := mesh.CreateIndexedAttributeFrom(m, "uv", attr.UV, 2, pool, indices)
	require.NoError(t, err)

	a, err := m.GetAttributeByID(id)
	require.NoError(t, err)
	require.True(t, a.IsIndexed())
	require.Equal(t, 4, a.Values().Len())

	idxBuf, err := a.Indices()
	require.NoError(t, err)
	idx, err := buffer.View[uint32](idxBuf)
	require.NoError(t, err)
	require.Equal(t, indices, idx)

	// Corner 3 and corner 0 share pool entry 0.
	u0, err := a.Values().GetFloat(int(idx[3]), 0)
	require.NoError(t, err)
	v0, err := a.Values().GetFloat(int(idx[3]), 1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, []float64{u0, v0})
}

func TestIndexedAttribute_Validation(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))
	require.NoError(t, m.AddTriangle(0, 1, 2))

	ic := func(idx []uint32, poolLen int) error {
		_, err := mesh.CreateIndexedAttributeFrom(m, "bad", attr.UV, 2,
			make([]float64, 2*poolLen), idx)

		return err
	}
	require.ErrorIs(t, ic([]uint32{0, 1}, 2), mesh.ErrInvalidArgument,
		"index count must match corner count")
	require.ErrorIs(t, ic([]uint32{0, 1, 2}, 2), mesh.ErrInvalidArgument,
		"indices must address the pool")
}

func TestWrapAttributeFrom_SharesCallerMemory(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))

	data := []float64{1, 2, 3}
	id, err := mesh.WrapAttributeFrom(m, "mass", attr.Vertex, attr.Scalar, 1, data)
	require.NoError(t, err)

	data[1] = 42
	a, err := m.GetAttributeByID(id)
	require.NoError(t, err)
	got, err := a.Values().GetFloat(1, 0)
	require.NoError(t, err)
	require.Equal(t, 42.0, got)
	require.Equal(t, buffer.External, a.Values().Ownership())
}

func TestWrapIndexedAttributeFrom_SharesCallerMemory(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))
	require.NoError(t, m.AddTriangles([]int{0, 1, 2, 0, 2, 3}))

	pool := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	id, err := mesh.WrapIndexedAttributeFrom(m, "uv", attr.UV, 2, pool, indices)
	require.NoError(t, err)

	a, err := m.GetAttributeByID(id)
	require.NoError(t, err)
	require.True(t, a.IsIndexed())
	require.Equal(t, buffer.External, a.Values().Ownership())
	idx, err := a.Indices()
	require.NoError(t, err)
	require.Equal(t, buffer.External, idx.Ownership())

	// Caller writes show through on both slices.
	pool[2] = 9
	v, err := a.Values().GetFloat(1, 0)
	require.NoError(t, err)
	require.Equal(t, 9.0, v)
	indices[5] = 1
	i5, err := idx.GetFloat(5, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, i5)
}

func TestWrapIndexedAttributeFrom_Validation(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))
	require.NoError(t, m.AddTriangle(0, 1, 2))
	pool := []float64{0, 0, 1, 1}

	_, err := mesh.WrapIndexedAttributeFrom(m, "uv", attr.UV, 2, pool,
		[]uint32{0})
	require.ErrorIs(t, err, mesh.ErrInvalidArgument, "index count must equal corners")

	_, err = mesh.WrapIndexedAttributeFrom(m, "uv", attr.UV, 2, pool,
		[]uint32{0, 1, 9})
	require.ErrorIs(t, err, mesh.ErrInvalidArgument, "index must address the pool")
}

func TestDeleteAttribute_HandleFailsAfterwards(t *testing.T) {
	m := shapes.Quad()
	id, err := m.CreateAttribute("color", attr.Vertex, attr.Color, 3,
		buffer.Uint8)
	require.NoError(t, err)

	h := m.AttributeHandle(id)
	_, err = h.Get()
	require.NoError(t, err)

	require.NoError(t, m.DeleteAttribute("color"))
	_, err = h.Get()
	require.ErrorIs(t, err, attr.ErrAttributeNotFound)
}

func TestDuplicateAttribute_IndependentStorage(t *testing.T) {
	m, err := shapes.Grid(2, 1) // 6 vertices
	require.NoError(t, err)
	_, err = mesh.CreateAttributeFrom(m, "mass", attr.Scalar, 1,
		[]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	dupID, err := m.DuplicateAttribute("mass", "mass2")
	require.NoError(t, err)

	orig, err := m.GetAttribute("mass")
	require.NoError(t, err)
	require.NoError(t, orig.Values().SetFloat(0, 0, 99))

	dup, err := m.GetAttributeByID(dupID)
	require.NoError(t, err)
	v, err := dup.Values().GetFloat(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v, "duplicate owns its storage")
}

func TestMatchAttributes_FiltersAndOrder(t *testing.T) {
	m := shapes.Quad()
	nID, err := m.CreateAttribute("n", attr.Vertex, attr.Normal, 3, buffer.Float64)
	require.NoError(t, err)
	_, err = m.CreateAttribute("area", attr.Facet, attr.Scalar, 1, buffer.Float64)
	require.NoError(t, err)
	uvID, err := m.CreateAttribute("uv", attr.Vertex, attr.UV, 2, buffer.Float32)
	require.NoError(t, err)

	got := m.MatchAttributes(attr.MatchOptions{Elements: []attr.Element{attr.Vertex}})
	require.Equal(t, []attr.ID{nID, uvID}, got,
		"reserved positions excluded, creation order kept")

	require.Empty(t, m.MatchAttributes(attr.MatchOptions{}))
}

func TestAttributesGrowWithElements(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))
	id, err := m.CreateAttribute("mass", attr.Vertex, attr.Scalar, 1,
		buffer.Float64, attr.WithDefaultValue(5))
	require.NoError(t, err)

	require.NoError(t, m.AddVertex([]float64{2, 0, 0}))

	a, err := m.GetAttributeByID(id)
	require.NoError(t, err)
	require.Equal(t, 4, a.Len())
	v, err := a.Values().GetFloat(3, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
}
