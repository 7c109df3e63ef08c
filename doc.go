// Package surfmesh is an in-memory surface-mesh data model: typed attribute
// buffers, named attribute sets, lazy edge/corner connectivity, and the
// structural edits that keep all three consistent.
//
// 🚀 What is surfmesh?
//
//	A pure-Go library that brings together:
//		• buffer/     — typed, resizable, optionally externally-owned storage
//		• attr/       — named attributes (plain and indexed) with stable ids
//		• mesh/       — SurfaceMesh: vertices, regular/hybrid facets, edges,
//		                corners, and atomic structural edits
//		• shapes/     — canonical primitives (cube, tetrahedron, grids, fans)
//		• components/ — connected-component analysis over facet adjacency
//
// ✨ Why choose surfmesh?
//
//   - Explicit ownership – external buffers stay caller-owned; growth
//     policies decide exactly when (and whether) a copy happens
//   - Loud failures – stale handles, gap mappings, and pre-init edge
//     queries return strict sentinel errors, never stale data
//   - Non-manifold tolerant – edges with three or more incident corners
//     are represented and traversable, not rejected
//   - Pure Go – no cgo, no hidden deps
//
// A mesh is built facet by facet, optionally wrapping caller memory:
//
//	m := mesh.New()
//	m.AddVertices([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0})
//	m.AddTriangle(0, 1, 2)
//	m.InitializeEdges()
//
// Dive into each package's doc.go for contracts, complexity notes and the
// deterministic-ordering guarantees the tests rely on.
//
//	go get github.com/halveth/surfmesh/mesh
package surfmesh
