// File: edits.go
// Role: count-changing structural edits: RemoveFacets, RemoveVertices,
//       RemapVertices, PermuteVertices, PermuteFacets.
// Failure contract: every edit validates first and commits last; on error
// the mesh is byte-for-byte unchanged.

package mesh

import (
	"fmt"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// CollisionPolicy decides how vertex attribute values combine when
// RemapVertices merges several vertices into one.
type CollisionPolicy uint8

const (
	// KeepFirst keeps the value of the lowest-id source vertex.
	KeepFirst CollisionPolicy = iota
	// Average stores the arithmetic mean of the colliding values.
	// Float-typed attributes only; an integer attribute with a real
	// collision fails the remap.
	Average
	// ErrorOnCollision fails the remap if any real collision occurs.
	ErrorOnCollision
)

// RemapOption configures RemapVertices.
type RemapOption func(*remapConfig)

type remapConfig struct {
	policy CollisionPolicy
}

// WithCollisionPolicy selects how colliding vertex attribute values merge.
func WithCollisionPolicy(p CollisionPolicy) RemapOption {
	return func(c *remapConfig) { c.policy = p }
}

// RemoveFacets removes the listed facets. Surviving facets close the gaps,
// keeping their relative order; per-facet and per-corner attribute entries
// (index buffers of indexed attributes included) are removed in lockstep.
// Connectivity is dropped.
//
// Complexity: O(facets + corners).
func (m *Mesh) RemoveFacets(facets []int) error {
	remove := make([]bool, m.numFacets)
	for _, f := range facets {
		if f < 0 || f >= m.numFacets {
			return fmt.Errorf("%w: facet %d of %d", ErrInvalidArgument, f, m.numFacets)
		}
		remove[f] = true
	}
	newToOld := make([]int, 0, m.numFacets)
	for f := 0; f < m.numFacets; f++ {
		if !remove[f] {
			newToOld = append(newToOld, f)
		}
	}
	if len(newToOld) == m.numFacets {
		return nil
	}

	return m.gatherFacets(newToOld)
}

// RemoveFacetsIf removes every facet accepted by pred.
func (m *Mesh) RemoveFacetsIf(pred func(f int) bool) error {
	var facets []int
	for f := 0; f < m.numFacets; f++ {
		if pred(f) {
			facets = append(facets, f)
		}
	}

	return m.RemoveFacets(facets)
}

// RemoveVertices removes the listed vertices together with every facet
// touching them. Surviving vertices and facets close the gaps, keeping
// relative order.
func (m *Mesh) RemoveVertices(vertices []int) error {
	removeV := make([]bool, m.numVertices)
	for _, v := range vertices {
		if v < 0 || v >= m.numVertices {
			return fmt.Errorf("%w: vertex %d of %d", ErrInvalidArgument, v, m.numVertices)
		}
		removeV[v] = true
	}

	// Facets touching a removed vertex go first.
	verts := m.cornerVerts()
	var facets []int
	for f := 0; f < m.numFacets; f++ {
		for c := m.FacetCornerBegin(f); c < m.FacetCornerEnd(f); c++ {
			if removeV[verts[c]] {
				facets = append(facets, f)

				break
			}
		}
	}
	if err := m.RemoveFacets(facets); err != nil {
		return err
	}

	// Compact the vertex range.
	oldToNew := make([]int, m.numVertices)
	newToOld := make([]int, 0, m.numVertices)
	for v := 0; v < m.numVertices; v++ {
		if removeV[v] {
			oldToNew[v] = -1

			continue
		}
		oldToNew[v] = len(newToOld)
		newToOld = append(newToOld, v)
	}
	if len(newToOld) == m.numVertices {
		return nil
	}

	return m.commitVertexGather(newToOld, oldToNew)
}

// RemapVertices merges vertices via a surjective old→new mapping.
//
// Contract:
//   - len(oldToNew) must equal the vertex count, every target must lie in
//     [0, vertex count), and the used target range must be contiguous
//     from 0; a skipped target id is ErrInvalidMapping.
//   - Colliding vertex attribute values combine per the collision policy
//     (KeepFirst by default).
//   - Facet vertex references are rewritten in place; corner, facet and
//     indexed attributes are untouched (indexed attributes address
//     corners, not vertices, and survive unchanged).
//   - An identity mapping leaves the mesh byte-for-byte unchanged.
//
// Complexity: O(vertices·channels + corners).
func (m *Mesh) RemapVertices(oldToNew []int, opts ...RemapOption) error {
	cfg := remapConfig{policy: KeepFirst}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(oldToNew) != m.numVertices {
		return fmt.Errorf("%w: mapping of %d entries for %d vertices",
			ErrInvalidMapping, len(oldToNew), m.numVertices)
	}

	newCount := 0
	for _, t := range oldToNew {
		if t < 0 || t >= m.numVertices {
			return fmt.Errorf("%w: target %d out of range", ErrInvalidMapping, t)
		}
		if t+1 > newCount {
			newCount = t + 1
		}
	}

	firstOld := make([]int, newCount)
	hits := make([]int, newCount)
	for i := range firstOld {
		firstOld[i] = -1
	}
	collisions := false
	for old, t := range oldToNew {
		hits[t]++
		if firstOld[t] < 0 {
			firstOld[t] = old
		} else {
			collisions = true
		}
	}
	for t, f := range firstOld {
		if f < 0 {
			return fmt.Errorf("%w: target %d is never mapped to (gap in codomain)",
				ErrInvalidMapping, t)
		}
	}
	if collisions && cfg.policy == ErrorOnCollision {
		return fmt.Errorf("%w: mapping merges vertices under ErrorOnCollision",
			ErrInvalidMapping)
	}

	// Stage replacement storage for every vertex attribute.
	type staged struct {
		a *attr.Attribute
		b *buffer.Buffer
	}
	var out []staged
	err := m.forEachAttr(func(a *attr.Attribute) error {
		if a.Element() != attr.Vertex {
			return nil
		}
		b, sErr := remapVertexAttr(a, oldToNew, firstOld, hits, collisions, cfg.policy)
		if sErr != nil {
			return sErr
		}
		out = append(out, staged{a: a, b: b})

		return nil
	})
	if err != nil {
		return err
	}

	// Commit: swap storage, rewrite facet references, update the count.
	for _, s := range out {
		if err = s.a.Rewrap(s.b); err != nil {
			return err
		}
	}
	verts := m.cornerVerts()
	for c := range verts {
		verts[c] = uint32(oldToNew[verts[c]])
	}
	m.numVertices = newCount
	m.clearConnectivity()

	return nil
}

// remapVertexAttr builds the post-remap storage for one vertex attribute.
func remapVertexAttr(
	a *attr.Attribute,
	oldToNew, firstOld, hits []int,
	collisions bool,
	policy CollisionPolicy,
) (*buffer.Buffer, error) {
	if policy != Average || !collisions {
		return a.Values().Gather(firstOld)
	}
	if !a.Type().IsFloat() {
		return nil, fmt.Errorf("%w: cannot average %s attribute %q",
			ErrInvalidArgument, a.Type(), a.Name())
	}
	ch := a.Channels()
	b, err := buffer.New(a.Type(), len(firstOld), ch)
	if err != nil {
		return nil, err
	}
	src := a.Values()
	for old, t := range oldToNew {
		for c := 0; c < ch; c++ {
			v, gErr := src.GetFloat(old, c)
			if gErr != nil {
				return nil, gErr
			}
			cur, gErr := b.GetFloat(t, c)
			if gErr != nil {
				return nil, gErr
			}
			if sErr := b.SetFloat(t, c, cur+v); sErr != nil {
				return nil, sErr
			}
		}
	}
	for t := range firstOld {
		for c := 0; c < ch; c++ {
			sum, gErr := b.GetFloat(t, c)
			if gErr != nil {
				return nil, gErr
			}
			if sErr := b.SetFloat(t, c, sum/float64(hits[t])); sErr != nil {
				return nil, sErr
			}
		}
	}

	return b, nil
}

// PermuteVertices reorders vertices so that new position i holds the
// vertex previously at newToOld[i]. Every vertex attribute is reordered in
// lockstep and facet references are rewritten. A non-bijective order is
// ErrInvalidPermutation.
//
// Complexity: O(vertices·channels + corners).
func (m *Mesh) PermuteVertices(newToOld []int) error {
	oldToNew, err := invertPermutation(newToOld, m.numVertices)
	if err != nil {
		return err
	}

	return m.commitVertexGather(newToOld, oldToNew)
}

// commitVertexGather reorders/subsets vertex storage by newToOld and
// rewrites facet references by oldToNew. Inputs are pre-validated.
func (m *Mesh) commitVertexGather(newToOld, oldToNew []int) error {
	type staged struct {
		a *attr.Attribute
		b *buffer.Buffer
	}
	var out []staged
	err := m.forEachAttr(func(a *attr.Attribute) error {
		if a.Element() != attr.Vertex {
			return nil
		}
		b, gErr := a.Values().Gather(newToOld)
		if gErr != nil {
			return gErr
		}
		out = append(out, staged{a: a, b: b})

		return nil
	})
	if err != nil {
		return err
	}
	for _, s := range out {
		if err = s.a.Rewrap(s.b); err != nil {
			return err
		}
	}
	verts := m.cornerVerts()
	for c := range verts {
		verts[c] = uint32(oldToNew[verts[c]])
	}
	m.numVertices = len(newToOld)
	m.clearConnectivity()

	return nil
}

// PermuteFacets reorders facets so that new position i holds the facet
// previously at newToOld[i]. Facet, corner and indexed-index attribute
// entries follow in lockstep; corner ids stay in facet-then-local order
// for the new facet order.
//
// Complexity: O(facets + corners).
func (m *Mesh) PermuteFacets(newToOld []int) error {
	if _, err := invertPermutation(newToOld, m.numFacets); err != nil {
		return err
	}

	return m.gatherFacets(newToOld)
}

// invertPermutation validates a bijection on 0..n and returns its inverse.
func invertPermutation(newToOld []int, n int) ([]int, error) {
	if len(newToOld) != n {
		return nil, fmt.Errorf("%w: %d entries for %d elements",
			ErrInvalidPermutation, len(newToOld), n)
	}
	inv := make([]int, n)
	for i := range inv {
		inv[i] = -1
	}
	for newI, old := range newToOld {
		if old < 0 || old >= n {
			return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidPermutation, old)
		}
		if inv[old] != -1 {
			return nil, fmt.Errorf("%w: index %d repeated", ErrInvalidPermutation, old)
		}
		inv[old] = newI
	}

	return inv, nil
}

// gatherFacets rebuilds facet/corner storage for the facet subset or
// reorder given by newToOld (pre-validated). Structural offset attributes
// are recomputed, not gathered.
func (m *Mesh) gatherFacets(newToOld []int) error {
	// Corner gather list, facet-then-local order over the new facets.
	cornerNewToOld := make([]int, 0, m.numCorners)
	sizes := make([]int, len(newToOld))
	for newF, oldF := range newToOld {
		begin, end := m.FacetCornerBegin(oldF), m.FacetCornerEnd(oldF)
		sizes[newF] = end - begin
		for c := begin; c < end; c++ {
			cornerNewToOld = append(cornerNewToOld, c)
		}
	}

	type staged struct {
		apply func() error
	}
	var out []staged
	err := m.forEachAttr(func(a *attr.Attribute) error {
		id := a.ID()
		if id == m.facetToCornerID || id == m.cornerToFacetID {
			return nil // recomputed below
		}
		switch {
		case a.Element() == attr.Facet:
			b, gErr := a.Values().Gather(newToOld)
			if gErr != nil {
				return gErr
			}
			out = append(out, staged{apply: func() error { return a.Rewrap(b) }})
		case a.Element() == attr.Corner:
			b, gErr := a.Values().Gather(cornerNewToOld)
			if gErr != nil {
				return gErr
			}
			out = append(out, staged{apply: func() error { return a.Rewrap(b) }})
		case a.IsIndexed():
			idx, iErr := a.Indices()
			if iErr != nil {
				return iErr
			}
			b, gErr := idx.Gather(cornerNewToOld)
			if gErr != nil {
				return gErr
			}
			out = append(out, staged{apply: func() error { return a.RewrapIndices(b) }})
		}

		return nil
	})
	if err != nil {
		return err
	}
	for _, s := range out {
		if err = s.apply(); err != nil {
			return err
		}
	}

	m.numFacets = len(newToOld)
	m.numCorners = len(cornerNewToOld)
	if !m.hybrid && m.numFacets == 0 {
		// An emptied regular mesh accepts any uniform degree again.
		m.vertexPerFacet = 0
	}
	if m.hybrid {
		if err = m.rebuildHybrid(sizes); err != nil {
			return err
		}
	}
	m.clearConnectivity()

	return nil
}

// rebuildHybrid recomputes the offset and corner-to-facet structural
// attributes from the new facet sizes.
func (m *Mesh) rebuildHybrid(sizes []int) error {
	offsets := make([]uint32, len(sizes))
	facets := make([]uint32, m.numCorners)
	corner := 0
	for f, s := range sizes {
		offsets[f] = uint32(corner)
		for j := 0; j < s; j++ {
			facets[corner+j] = uint32(f)
		}
		corner += s
	}

	f2c, err := m.attrs.GetByID(m.facetToCornerID)
	if err != nil {
		return err
	}
	ob, err := buffer.Make[uint32](len(offsets), 1)
	if err != nil {
		return err
	}
	ov, err := buffer.ViewMut[uint32](ob)
	if err != nil {
		return err
	}
	copy(ov, offsets)
	if err = f2c.Rewrap(ob); err != nil {
		return err
	}

	c2f, err := m.attrs.GetByID(m.cornerToFacetID)
	if err != nil {
		return err
	}
	fb, err := buffer.Make[uint32](len(facets), 1)
	if err != nil {
		return err
	}
	fv, err := buffer.ViewMut[uint32](fb)
	if err != nil {
		return err
	}
	copy(fv, facets)

	return c2f.Rewrap(fb)
}
