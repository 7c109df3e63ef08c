// File: edits_test.go
// Role: remap, permutation and removal checks, including the all-or-
//       nothing failure contract.

package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
	"github.com/halveth/surfmesh/mesh"
	"github.com/halveth/surfmesh/shapes"
)

// twoTriangles builds the shared-edge pair (0,1,2)+(0,2,3) with a scalar
// vertex attribute 1,2,3,4.
func twoTriangles(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	}))
	require.NoError(t, m.AddTriangles([]int{0, 1, 2, 0, 2, 3}))
	_, err := mesh.CreateAttributeFrom(m, "weight", attr.Scalar, 1,
		[]float64{1, 2, 3, 4})
	require.NoError(t, err)

	return m
}

func vertexFloats(t *testing.T, m *mesh.Mesh, name string) []float64 {
	t.Helper()
	a, err := m.GetAttribute(name)
	require.NoError(t, err)
	v, err := buffer.View[float64](a.Values())
	require.NoError(t, err)

	return v
}

func TestRemapVertices_IdentityIsNoop(t *testing.T) {
	m := twoTriangles(t)

	require.NoError(t, m.RemapVertices([]int{0, 1, 2, 3}))

	require.Equal(t, 4, m.NumVertices())
	require.Equal(t, []float64{1, 2, 3, 4}, vertexFloats(t, m, "weight"))
	fv, err := m.FacetVertices(1)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 2, 3}, fv)
}

func TestRemapVertices_MergeKeepFirst(t *testing.T) {
	m := twoTriangles(t)

	// Fold vertex 3 into vertex 1.
	require.NoError(t, m.RemapVertices([]int{0, 1, 2, 1}))

	require.Equal(t, 3, m.NumVertices())
	require.Equal(t, []float64{1, 2, 3}, vertexFloats(t, m, "weight"),
		"KeepFirst keeps the lowest-id source value")
	fv, err := m.FacetVertices(1)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 2, 1}, fv)
	require.False(t, m.HasEdges())
}

func TestRemapVertices_MergeAverage(t *testing.T) {
	m := twoTriangles(t)

	require.NoError(t, m.RemapVertices([]int{0, 1, 2, 1},
		mesh.WithCollisionPolicy(mesh.Average)))

	require.Equal(t, []float64{1, 3, 3}, vertexFloats(t, m, "weight"),
		"colliding values 2 and 4 average to 3")
}

func TestRemapVertices_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mapping []int
		opts    []mesh.RemapOption
	}{
		{"wrong length", []int{0, 1, 2}, nil},
		{"target out of range", []int{0, 1, 2, 4}, nil},
		{"gap in codomain", []int{0, 0, 1, 3}, nil},
		{
			"collision rejected",
			[]int{0, 1, 2, 1},
			[]mesh.RemapOption{mesh.WithCollisionPolicy(mesh.ErrorOnCollision)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := twoTriangles(t)
			err := m.RemapVertices(tc.mapping, tc.opts...)
			require.ErrorIs(t, err, mesh.ErrInvalidMapping)

			// Failed remaps leave the mesh untouched.
			require.Equal(t, 4, m.NumVertices())
			require.Equal(t, []float64{1, 2, 3, 4}, vertexFloats(t, m, "weight"))
		})
	}
}

func TestRemapVertices_AverageRejectsIntegers(t *testing.T) {
	m := twoTriangles(t)
	_, err := mesh.CreateAttributeFrom(m, "tag", attr.Scalar, 1,
		[]int32{10, 20, 30, 40})
	require.NoError(t, err)

	err = m.RemapVertices([]int{0, 1, 2, 1},
		mesh.WithCollisionPolicy(mesh.Average))
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)
	require.Equal(t, 4, m.NumVertices())
}

func TestPermuteVertices_RoundTrip(t *testing.T) {
	m := twoTriangles(t)

	perm := []int{2, 0, 3, 1} // newToOld
	require.NoError(t, m.PermuteVertices(perm))
	require.Equal(t, []float64{3, 1, 4, 2}, vertexFloats(t, m, "weight"))

	inverse := make([]int, len(perm))
	for i, old := range perm {
		inverse[old] = i
	}
	require.NoError(t, m.PermuteVertices(inverse))

	require.Equal(t, []float64{1, 2, 3, 4}, vertexFloats(t, m, "weight"))
	fv, err := m.FacetVertices(0)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2}, fv)
}

func TestPermuteVertices_RejectsNonBijection(t *testing.T) {
	m := twoTriangles(t)

	err := m.PermuteVertices([]int{0, 0, 1, 2})
	require.ErrorIs(t, err, mesh.ErrInvalidPermutation)
	err = m.PermuteVertices([]int{0, 1, 2})
	require.ErrorIs(t, err, mesh.ErrInvalidPermutation)
}

func TestPermuteFacets_ReordersAttributes(t *testing.T) {
	m := twoTriangles(t)
	_, err := mesh.CreateAttributeFrom(m, "area", attr.Scalar, 1,
		[]float64{0.5, 0.25})
	require.NoError(t, err)

	require.NoError(t, m.PermuteFacets([]int{1, 0}))

	fv, fvErr := m.FacetVertices(0)
	require.NoError(t, fvErr)
	require.Equal(t, []uint32{0, 2, 3}, fv)
	a, aErr := m.GetAttribute("area")
	require.NoError(t, aErr)
	v, vErr := buffer.View[float64](a.Values())
	require.NoError(t, vErr)
	require.Equal(t, []float64{0.25, 0.5}, v)
}

func TestRemoveFacets_KeepsSurvivorOrder(t *testing.T) {
	m, err := shapes.Grid(2, 2) // quads: 0 1 / 2 3
	require.NoError(t, err)
	_, err = mesh.CreateAttributeFrom(m, "label", attr.Scalar, 1,
		[]float64{10, 11, 12, 13})
	require.NoError(t, err)

	require.NoError(t, m.RemoveFacets([]int{1, 2}))

	require.Equal(t, 2, m.NumFacets())
	require.Equal(t, 9, m.NumVertices(), "vertices survive facet removal")
	a, aErr := m.GetAttribute("label")
	require.NoError(t, aErr)
	v, vErr := buffer.View[float64](a.Values())
	require.NoError(t, vErr)
	require.Equal(t, []float64{10, 13}, v)
	fv, fvErr := m.FacetVertices(1)
	require.NoError(t, fvErr)
	require.Equal(t, []uint32{4, 5, 8, 7}, fv)
}

func TestRemoveFacetsIf(t *testing.T) {
	m, err := shapes.Grid(3, 1)
	require.NoError(t, err)

	require.NoError(t, m.RemoveFacetsIf(func(f int) bool { return f%2 == 0 }))

	require.Equal(t, 1, m.NumFacets())
	fv, fvErr := m.FacetVertices(0)
	require.NoError(t, fvErr)
	require.Equal(t, []uint32{1, 2, 6, 5}, fv)
}

func TestRemoveFacets_AllResetsDegree(t *testing.T) {
	m := twoTriangles(t)

	require.NoError(t, m.RemoveFacets([]int{0, 1}))
	require.Equal(t, 0, m.NumFacets())
	require.Equal(t, 0, m.VertexPerFacet())

	// The emptied mesh accepts a fresh uniform degree without promotion.
	require.NoError(t, m.AddQuad(0, 1, 2, 3))
	require.False(t, m.IsHybrid())
	require.True(t, m.IsQuadMesh())
	require.Equal(t, 4, m.VertexPerFacet())
}

func TestRemoveVertices_DropsIncidentFacets(t *testing.T) {
	m := twoTriangles(t)

	require.NoError(t, m.RemoveVertices([]int{1}))

	require.Equal(t, 3, m.NumVertices())
	require.Equal(t, 1, m.NumFacets(), "only the facet avoiding vertex 1 survives")
	require.Equal(t, []float64{1, 3, 4}, vertexFloats(t, m, "weight"))
	fv, err := m.FacetVertices(0)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2}, fv, "references are compacted")
}

func TestRemoveFacets_HybridMesh(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 2, 0, 0,
	}))
	require.NoError(t, m.AddHybrid([]int{3, 4, 3}, []int{
		0, 1, 2,
		0, 1, 2, 3,
		1, 4, 2,
	}))

	require.NoError(t, m.RemoveFacets([]int{0}))

	require.Equal(t, 2, m.NumFacets())
	require.Equal(t, 7, m.NumCorners())
	require.Equal(t, 4, m.FacetSize(0))
	require.Equal(t, 3, m.FacetSize(1))
	fv, err := m.FacetVertices(1)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 4, 2}, fv)
	f, err := m.CornerFacet(6)
	require.NoError(t, err)
	require.Equal(t, 1, f)
}
