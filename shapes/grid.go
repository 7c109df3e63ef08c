// File: grid.go
// Role: planar quad grid constructor.

package shapes

import (
	"fmt"

	"github.com/halveth/surfmesh/mesh"
)

// Grid returns an nx×ny quad grid in the z=0 plane with unit spacing:
// (nx+1)·(ny+1) vertices in row-major order, nx·ny counter-clockwise
// quads. nx or ny < 1 fails with ErrTooFewSides.
func Grid(nx, ny int) (*mesh.Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("%w: grid needs nx,ny ≥ 1, got %d×%d",
			ErrTooFewSides, nx, ny)
	}

	cols := nx + 1
	coords := make([]float64, 0, 3*cols*(ny+1))
	for y := 0; y <= ny; y++ {
		for x := 0; x <= nx; x++ {
			coords = append(coords, float64(x), float64(y), 0)
		}
	}
	quads := make([]int, 0, 4*nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			v := y*cols + x
			quads = append(quads, v, v+1, v+1+cols, v+cols)
		}
	}

	m := mesh.New()
	mustAdd(m.AddVertices(coords))
	mustAdd(m.AddQuads(quads))

	return m, nil
}
