// Package mesh implements SurfaceMesh: a polygonal surface with
// attribute-backed storage, lazy edge/corner connectivity, and atomic
// structural edits.
//
// # Storage model
//
// Vertex positions and facet topology are themselves attributes, living in
// the mesh's attribute set under reserved '$'-prefixed names
// ($vertex_to_position, $corner_to_vertex, $facet_to_first_corner). A mesh
// whose facets all share one degree keeps the compact regular encoding
// (row-major corner-to-vertex); the first mixed-degree facet promotes the
// mesh to the hybrid encoding (per-facet first-corner offsets over a flat
// corner-to-vertex buffer) automatically and permanently.
//
// # Corners and edges
//
// A corner is one vertex incidence within one facet; corner ids run in
// facet-then-local order and every per-corner (and per-index of indexed)
// attribute is keyed on them. Edge connectivity is derived lazily:
// InitializeEdges deduplicates unordered vertex pairs in first-encounter
// order (or adopts a caller-supplied edge list, validated against the
// actual incidence) and records, per edge and per vertex, the chain of
// incident corners. Edges with one incident corner are boundary; three or
// more are non-manifold and remain fully traversable. Every structural
// edit that changes facet topology drops the connectivity; queries before
// (re-)initialization fail with ErrEdgesNotInitialized; nothing is
// rebuilt behind the caller's back.
//
// # Structural edits
//
// RemoveFacets, RemoveVertices, RemapVertices, PermuteVertices,
// PermuteFacets, WeldIndexedAttribute, Combine and Transform all follow
// one failure contract: they either fully apply or fully fail with the
// mesh unchanged. Count-changing edits rebuild affected attribute storage
// internally, so externally wrapped buffers end up severed (Internal) on
// the elements they touch.
//
// # Concurrency
//
// One mutator at a time. Concurrent readers are safe only while no writer
// runs; the mesh takes no locks of its own, since connectivity
// invalidation spans multiple methods and cannot be made atomic with
// per-call locking anyway.
//
// Errors:
//
//	ErrInvalidArgument      - missing/ambiguous parameter, wrong dimension.
//	ErrInvalidMapping       - remap target range has gaps or overflows.
//	ErrInvalidPermutation   - duplicate or missing index in a permutation.
//	ErrInconsistentTopology - facet vertex out of range, or a user edge
//	                          list contradicting the facet incidence.
//	ErrEdgesNotInitialized  - connectivity query before InitializeEdges.
package mesh
