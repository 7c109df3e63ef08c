// Package components labels the connected components of a mesh's facet
// graph: two facets are adjacent when they share an edge. Labeling is
// deterministic: components are numbered by their lowest-index facet in
// ascending order, so repeated runs over the same mesh agree exactly.
//
// The facet graph comes from the mesh's edge connectivity, so
// InitializeEdges must have run; labeling before that fails with
// mesh.ErrEdgesNotInitialized.
package components
