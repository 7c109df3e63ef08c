// File: vertices_test.go
// Role: wrapped (caller-owned) vertex storage checks.

package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
	"github.com/halveth/surfmesh/mesh"
)

func TestWrapVertices_SharesCallerMemory(t *testing.T) {
	m := mesh.New()
	coords := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}

	require.NoError(t, m.WrapVertices(coords, 3))
	require.Equal(t, 3, m.NumVertices())
	require.Equal(t, buffer.External, m.PositionsAttribute().Values().Ownership())

	coords[3] = 7
	p, err := m.Position(1)
	require.NoError(t, err)
	require.Equal(t, 7.0, p[0])

	vv, err := m.VertexView()
	require.NoError(t, err)
	vv.Row(0)[2] = 5
	require.Equal(t, 5.0, coords[2], "writes flow back to the caller's slice")
}

func TestWrapVertices_BadExtents(t *testing.T) {
	m := mesh.New()

	err := m.WrapVertices([]float64{0, 0, 0}, 2)
	require.ErrorIs(t, err, buffer.ErrInvalidArgument)
}

func TestWrapVertices_SiblingGrowthRefusalIsAtomic(t *testing.T) {
	m := mesh.New()
	require.NoError(t, m.AddVertices([]float64{0, 0, 0, 1, 0, 0}))
	// External sibling keeps the default ErrorOnGrowth policy.
	_, err := mesh.WrapAttributeFrom(m, "mass", attr.Vertex, attr.Scalar, 1,
		[]float64{10, 20})
	require.NoError(t, err)

	bigger := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}
	err = m.WrapVertices(bigger, 3)
	require.ErrorIs(t, err, buffer.ErrCapacity)

	require.Equal(t, 2, m.NumVertices(), "refused wrap changes nothing")
	require.Equal(t, buffer.Internal, m.PositionsAttribute().Values().Ownership())
	p, pErr := m.Position(1)
	require.NoError(t, pErr)
	require.Equal(t, []float64{1, 0, 0}, p)
}

func TestWrapConstVertices_RejectsWrites(t *testing.T) {
	m := mesh.New()
	coords := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}

	require.NoError(t, m.WrapConstVertices(coords, 3))

	_, err := m.VertexView()
	require.ErrorIs(t, err, buffer.ErrReadOnly)

	p, pErr := m.Position(2)
	require.NoError(t, pErr, "reads still work")
	require.Equal(t, []float64{0, 1, 0}, p)

	err = m.Transform(mesh.Translation(1, 0, 0))
	require.ErrorIs(t, err, buffer.ErrReadOnly)
}

func TestWrappedVertices_GrowthPolicy(t *testing.T) {
	m := mesh.New()
	backing := make([]float64, 9, 18)
	require.NoError(t, m.WrapVertices(backing[:9], 3))

	// External storage refuses growth by default.
	err := m.AddVertex([]float64{9, 9, 9})
	require.ErrorIs(t, err, buffer.ErrCapacity)
	require.Equal(t, 3, m.NumVertices(), "failed add changes nothing")

	// Within spare capacity, growth reuses the caller's array.
	m.PositionsAttribute().SetGrowthPolicy(buffer.AllowWithinCapacity)
	require.NoError(t, m.AddVertex([]float64{9, 9, 9}))
	require.Equal(t, 4, m.NumVertices())
	require.Equal(t, 9.0, backing[:12][9])
}
