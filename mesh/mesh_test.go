// File: mesh_test.go
// Role: construction, vertex/facet bookkeeping and regular↔hybrid
//       promotion checks.

package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
	"github.com/halveth/surfmesh/mesh"
)

func TestNew_Defaults(t *testing.T) {
	m := mesh.New()

	require.Equal(t, 3, m.Dimension())
	require.Zero(t, m.NumVertices())
	require.Zero(t, m.NumFacets())
	require.Zero(t, m.NumCorners())
	require.Zero(t, m.NumEdges())
	require.True(t, m.IsRegular())
	require.True(t, m.HasAttribute(mesh.AttrVertexToPosition))
	require.True(t, m.HasAttribute(mesh.AttrCornerToVertex))
}

func TestNew_WithDimension(t *testing.T) {
	m := mesh.New(mesh.WithDimension(2))

	require.Equal(t, 2, m.Dimension())
	require.NoError(t, m.AddVertex([]float64{1, 2}))

	p, err := m.Position(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, p)
}

func TestAddVertices_RejectsPartialRow(t *testing.T) {
	m := mesh.New()

	err := m.AddVertices([]float64{0, 0, 0, 1})
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)
	require.Zero(t, m.NumVertices())
}

func TestAddFacets_OutOfRangeVertex(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))

	err := m.AddTriangle(0, 1, 3)
	require.ErrorIs(t, err, mesh.ErrInconsistentTopology)
	require.Zero(t, m.NumFacets(), "failed add must not leave a partial facet")
	require.Zero(t, m.NumCorners())
}

func TestAddFacets_RegularThenHybrid(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
		2, 0, 0,
	}))

	require.NoError(t, m.AddTriangle(0, 1, 2))
	require.True(t, m.IsTriangleMesh())
	require.Equal(t, 3, m.VertexPerFacet())

	// A quad forces hybrid storage; the triangle keeps its corners.
	require.NoError(t, m.AddQuad(0, 1, 2, 3))
	require.True(t, m.IsHybrid())
	require.Equal(t, 2, m.NumFacets())
	require.Equal(t, 7, m.NumCorners())
	require.Equal(t, 3, m.FacetSize(0))
	require.Equal(t, 4, m.FacetSize(1))

	fv, err := m.FacetVertices(1)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2, 3}, fv)

	f, err := m.CornerFacet(5)
	require.NoError(t, err)
	require.Equal(t, 1, f)
}

func TestAddHybrid_UniformStaysRegular(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))

	require.NoError(t, m.AddHybrid([]int{3, 3}, []int{0, 1, 2, 0, 2, 3}))
	require.True(t, m.IsRegular())
	require.True(t, m.IsTriangleMesh())
}

func TestCompressIfRegular(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))
	// Mixed sizes force hybrid, then removing the quad leaves uniform
	// triangles that can compress back.
	require.NoError(t, m.AddHybrid([]int{3, 4, 3}, []int{
		0, 1, 2,
		0, 1, 2, 3,
		0, 2, 3,
	}))
	require.True(t, m.IsHybrid())

	require.NoError(t, m.RemoveFacets([]int{1}))
	require.NoError(t, m.CompressIfRegular())

	require.True(t, m.IsTriangleMesh())
	require.False(t, m.HasAttribute(mesh.AttrFacetToFirstCorner))
	require.False(t, m.HasAttribute(mesh.AttrCornerToFacet))
	fv, err := m.FacetVertices(1)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 2, 3}, fv)
}

func TestFacetView_RegularOnly(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))
	require.NoError(t, m.AddTriangles([]int{0, 1, 2, 0, 2, 3}))

	fv, err := m.FacetView()
	require.NoError(t, err)
	require.Equal(t, 2, fv.Len())
	require.Equal(t, []uint32{0, 2, 3}, fv.Row(1))

	require.NoError(t, m.AddPolygon([]int{0, 1, 2, 3}))
	_, err = m.FacetView()
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)
}

func TestVertexView_WritesThrough(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 2, 3}))

	vv, err := m.VertexView()
	require.NoError(t, err)
	require.Equal(t, 2, vv.Len())
	vv.Row(1)[0] = 9

	p, err := m.Position(1)
	require.NoError(t, err)
	require.Equal(t, []float64{9, 2, 3}, p)
}

func TestClearFacets_KeepsVertices(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))
	require.NoError(t, m.AddTriangle(0, 1, 2))
	require.NoError(t, m.InitializeEdges())

	require.NoError(t, m.ClearFacets())

	require.Equal(t, 3, m.NumVertices())
	require.Zero(t, m.NumFacets())
	require.Zero(t, m.NumCorners())
	require.False(t, m.HasEdges())
}

func TestClearVertices_EmptiesEverything(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))
	require.NoError(t, m.AddTriangle(0, 1, 2))

	require.NoError(t, m.ClearVertices())

	require.Zero(t, m.NumVertices())
	require.Zero(t, m.NumFacets())
	require.Zero(t, m.NumCorners())
}

func TestReservedAttributes_AreProtected(t *testing.T) {
	m := mesh.New()

	err := m.DeleteAttribute(mesh.AttrVertexToPosition)
	require.ErrorIs(t, err, attr.ErrReservedName)

	_, err = m.CreateAttribute("$mine", attr.Vertex, attr.Scalar, 1,
		buffer.Float64)
	require.ErrorIs(t, err, attr.ErrReservedName)

	// Renaming a structural slot would let a later Delete remove it.
	err = m.RenameAttribute(mesh.AttrVertexToPosition, "pos")
	require.ErrorIs(t, err, attr.ErrReservedName)
	require.NoError(t, m.AddVertices([]float64{1, 2, 3}))
	p, err := m.Position(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, p)
}

func TestWrapFacets_SharesCallerMemory(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))
	flat := []uint32{0, 1, 2, 0, 2, 3}

	require.NoError(t, m.WrapFacets(flat, 2, 3))
	require.True(t, m.IsTriangleMesh())
	require.Equal(t, 2, m.NumFacets())
	require.Equal(t, 6, m.NumCorners())

	// Caller writes show through.
	flat[5] = 1
	fv, err := m.FacetVertices(1)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 2, 1}, fv)
}

func TestWrapFacets_ReplacesHybridEncoding(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))
	require.NoError(t, m.AddHybrid([]int{3, 4}, []int{0, 1, 2, 0, 1, 2, 3}))
	require.True(t, m.IsHybrid())
	_, err := mesh.CreateAttributeFrom(m, "area", attr.Scalar, 1,
		[]float64{0.5, 1})
	require.NoError(t, err)

	require.NoError(t, m.WrapFacets([]uint32{0, 1, 2, 3}, 1, 4))
	require.False(t, m.IsHybrid())
	require.True(t, m.IsQuadMesh())
	require.False(t, m.HasAttribute(mesh.AttrFacetToFirstCorner))

	// Sibling facet attributes follow the new count.
	a, err := m.GetAttribute("area")
	require.NoError(t, err)
	require.Equal(t, 1, a.Values().Len())
}

func TestWrapFacets_Validation(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))

	err := m.WrapFacets([]uint32{0, 1, 7}, 1, 3)
	require.ErrorIs(t, err, mesh.ErrInconsistentTopology)
	require.Equal(t, 0, m.NumFacets(), "refused wrap changes nothing")

	err = m.WrapFacets([]uint32{0, 1}, 1, 3)
	require.ErrorIs(t, err, buffer.ErrInvalidArgument)
}

func TestWrapConstFacets_RejectsGrowth(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}))
	require.NoError(t, m.WrapConstFacets([]uint32{0, 1, 2}, 1, 3))

	fv, err := m.FacetVertices(0)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2}, fv)

	err = m.AddTriangle(0, 2, 1)
	require.ErrorIs(t, err, buffer.ErrCapacity)
	require.Equal(t, 1, m.NumFacets())
}
