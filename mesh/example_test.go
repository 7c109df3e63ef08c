// File: example_test.go
// Role: runnable documentation for the most common mesh workflows.

package mesh_test

import (
	"fmt"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/mesh"
	"github.com/halveth/surfmesh/shapes"
)

// Build a triangle pair, attach a vertex attribute and walk the facets.
func Example() {
	m := mesh.New()
	_ = m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	})
	_ = m.AddTriangles([]int{0, 1, 2, 0, 2, 3})

	_, _ = mesh.CreateAttributeFrom(m, "height", attr.Scalar, 1,
		[]float64{0, 0, 1, 1})

	fmt.Println("vertices:", m.NumVertices())
	fmt.Println("facets:", m.NumFacets())
	for f := 0; f < m.NumFacets(); f++ {
		fv, _ := m.FacetVertices(f)
		fmt.Println("facet", f, "->", fv)
	}

	// Output:
	// vertices: 4
	// facets: 2
	// facet 0 -> [0 1 2]
	// facet 1 -> [0 2 3]
}

// Edge connectivity answers adjacency queries after one explicit build.
func ExampleMesh_InitializeEdges() {
	m := shapes.Cube()
	_ = m.InitializeEdges()

	fmt.Println("edges:", m.NumEdges())

	boundary := 0
	for e := 0; e < m.NumEdges(); e++ {
		if b, _ := m.IsBoundaryEdge(e); b {
			boundary++
		}
	}
	fmt.Println("boundary edges:", boundary)

	facets, _ := m.FacetsAroundVertex(0)
	n := 0
	for range facets {
		n++
	}
	fmt.Println("facets around vertex 0:", n)

	// Output:
	// edges: 12
	// boundary edges: 0
	// facets around vertex 0: 3
}

// Merging coincident vertices with RemapVertices closes seams.
func ExampleMesh_RemapVertices() {
	m := mesh.New()
	// Two triangles stitched from duplicated seam vertices 2/4 and 0/5.
	_ = m.AddVertices([]float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
		1, 1, 0,
		0, 0, 0,
	})
	_ = m.AddTriangles([]int{0, 1, 2, 5, 4, 3})

	_ = m.RemapVertices([]int{0, 1, 2, 3, 2, 0})

	fmt.Println("vertices:", m.NumVertices())
	fv, _ := m.FacetVertices(1)
	fmt.Println("facet 1 ->", fv)

	// Output:
	// vertices: 4
	// facet 1 -> [0 2 3]
}
