// File: transform_test.go
// Role: affine transform checks, including direction handling under
//       non-uniform scaling.

package mesh_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/mesh"
	"github.com/halveth/surfmesh/shapes"
)

func TestTransform_Translation(t *testing.T) {
	m := shapes.Tetrahedron()

	require.NoError(t, m.Transform(mesh.Translation(1, 2, 3)))

	p, err := m.Position(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, p)
	p, err = m.Position(1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 2, 3}, p)
}

func TestTransform_NormalsUseInverseTranspose(t *testing.T) {
	m, err := shapes.PolygonFan(3) // 4 vertices, 3 facets
	require.NoError(t, err)
	s := 1 / math.Sqrt2
	_, err = mesh.CreateAttributeFrom(m, "n", attr.Normal, 3, []float64{
		1, 0, 0,
		s, s, 0,
		0, 0, 1,
		0, 1, 0,
	})
	require.NoError(t, err)

	// Stretch x by 2: positions scale, but a 45° normal must tilt toward
	// the y axis (inverse transpose halves its x component before
	// renormalization), not follow the points.
	require.NoError(t, m.Transform(mesh.Scaling(2, 1, 1)))

	p, err := m.Position(1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0, 0}, p)

	a, err := m.GetAttribute("n")
	require.NoError(t, err)
	read := func(e int) [3]float64 {
		var v [3]float64
		for c := 0; c < 3; c++ {
			f, gErr := a.Values().GetFloat(e, c)
			require.NoError(t, gErr)
			v[c] = f
		}

		return v
	}

	require.Equal(t, [3]float64{1, 0, 0}, read(0), "axis normals stay put")
	require.Equal(t, [3]float64{0, 0, 1}, read(2))
	require.Equal(t, [3]float64{0, 1, 0}, read(3))

	tilted := read(1)
	want := 1 / math.Sqrt(1+4) // renormalized (1/2, 1, 0)
	require.InDelta(t, want, tilted[0], 1e-12)
	require.InDelta(t, 2*want, tilted[1], 1e-12)
	require.InDelta(t, 0, tilted[2], 1e-12)
}

func TestTransform_LeavesNonDirectionAttributesAlone(t *testing.T) {
	m, err := shapes.PolygonFan(3) // 4 vertices, 3 facets
	require.NoError(t, err)
	_, err = mesh.CreateAttributeFrom(m, "velocity", attr.Vector, 3,
		[]float64{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1})
	require.NoError(t, err)

	require.NoError(t, m.Transform(mesh.Scaling(2, 2, 2)))

	a, err := m.GetAttribute("velocity")
	require.NoError(t, err)
	v, err := a.Values().GetFloat(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v, "plain vectors carry no geometric contract")
}

func TestTransform_Errors(t *testing.T) {
	flat := mesh.New(mesh.WithDimension(2))
	require.NoError(t, flat.AddVertices([]float64{0, 0, 1, 0}))
	err := flat.Transform(mesh.Identity4())
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)

	m := shapes.Quad()
	err = m.Transform(mesh.Scaling(0, 1, 1))
	require.ErrorIs(t, err, mesh.ErrInvalidArgument, "singular linear part")
	p, pErr := m.Position(1)
	require.NoError(t, pErr)
	require.Equal(t, []float64{1, 0, 0}, p, "failed transform changes nothing")
}
