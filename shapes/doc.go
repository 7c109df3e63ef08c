// Package shapes builds small canonical meshes: Platonic shells, quads,
// grids and polygon fans. Every constructor is deterministic: the same
// parameters always yield byte-identical vertex and facet orders, which
// makes the outputs convenient fixtures for tests and examples.
//
// Constructors validate their parameters early and return sentinel
// errors; they never panic. All shapes are 3-dimensional and come with
// edges NOT initialized, mirroring a freshly assembled mesh.
package shapes
