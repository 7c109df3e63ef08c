// File: shapes.go
// Role: canonical closed shells, single facets and fans.

package shapes

import (
	"errors"
	"fmt"
	"math"

	"github.com/halveth/surfmesh/mesh"
)

var (
	// ErrTooFewSides rejects fan and grid parameters below their minimum.
	ErrTooFewSides = errors.New("shapes: too few sides")
)

// Cube returns the unit cube [0,1]³ as six outward-facing quads.
// 8 vertices, 6 facets, 24 corners; 12 edges once initialized, every
// edge interior with exactly two incident corners.
func Cube() *mesh.Mesh {
	m := mesh.New()
	mustAdd(m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
		0, 0, 1,
		1, 0, 1,
		1, 1, 1,
		0, 1, 1,
	}))
	mustAdd(m.AddQuads([]int{
		0, 3, 2, 1, // bottom
		4, 5, 6, 7, // top
		0, 1, 5, 4, // front
		1, 2, 6, 5, // right
		2, 3, 7, 6, // back
		3, 0, 4, 7, // left
	}))

	return m
}

// Tetrahedron returns the corner tetrahedron spanned by the origin and
// the three unit axis points, four outward-facing triangles.
func Tetrahedron() *mesh.Mesh {
	m := mesh.New()
	mustAdd(m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}))
	mustAdd(m.AddTriangles([]int{
		0, 2, 1,
		0, 1, 3,
		0, 3, 2,
		1, 2, 3,
	}))

	return m
}

// Octahedron returns the unit octahedron (vertices on the axes at ±1),
// eight outward-facing triangles.
func Octahedron() *mesh.Mesh {
	m := mesh.New()
	mustAdd(m.AddVertices([]float64{
		1, 0, 0,
		-1, 0, 0,
		0, 1, 0,
		0, -1, 0,
		0, 0, 1,
		0, 0, -1,
	}))
	mustAdd(m.AddTriangles([]int{
		0, 2, 4,
		2, 1, 4,
		1, 3, 4,
		3, 0, 4,
		2, 0, 5,
		1, 2, 5,
		3, 1, 5,
		0, 3, 5,
	}))

	return m
}

// Quad returns a single unit quad in the z=0 plane. Every edge is a
// boundary edge.
func Quad() *mesh.Mesh {
	m := mesh.New()
	mustAdd(m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}))
	mustAdd(m.AddQuad(0, 1, 2, 3))

	return m
}

// PolygonFan returns a triangulated disk: one center vertex plus n rim
// vertices on the unit circle, n triangles sharing the center.
// n < 3 fails with ErrTooFewSides.
func PolygonFan(n int) (*mesh.Mesh, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: fan needs n ≥ 3, got %d", ErrTooFewSides, n)
	}

	coords := make([]float64, 0, 3*(n+1))
	coords = append(coords, 0, 0, 0)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		coords = append(coords, math.Cos(a), math.Sin(a), 0)
	}
	tris := make([]int, 0, 3*n)
	for i := 0; i < n; i++ {
		tris = append(tris, 0, 1+i, 1+(i+1)%n)
	}

	m := mesh.New()
	mustAdd(m.AddVertices(coords))
	mustAdd(m.AddTriangles(tris))

	return m, nil
}

// NonManifoldFan returns k triangles sharing one common edge, a book of
// pages hinged on the segment from the origin to (0,0,1). With k ≥ 3 the
// hinge edge is non-manifold: it carries k incident corners. k < 1 fails
// with ErrTooFewSides.
func NonManifoldFan(k int) (*mesh.Mesh, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: fan needs k ≥ 1, got %d", ErrTooFewSides, k)
	}

	coords := make([]float64, 0, 3*(k+2))
	coords = append(coords, 0, 0, 0, 0, 0, 1)
	for i := 0; i < k; i++ {
		a := 2 * math.Pi * float64(i) / float64(k)
		coords = append(coords, math.Cos(a), math.Sin(a), 0)
	}
	tris := make([]int, 0, 3*k)
	for i := 0; i < k; i++ {
		tris = append(tris, 0, 1, 2+i)
	}

	m := mesh.New()
	mustAdd(m.AddVertices(coords))
	mustAdd(m.AddTriangles(tris))

	return m, nil
}

// mustAdd guards the fixed-topology constructors: their inputs are
// compile-time constants, so a failure is a bug, not a caller mistake.
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}
