// File: weld.go
// Role: WeldIndexedAttribute — merge value-pool entries that are
//       numerically (and, for directional data, angularly)
//       indistinguishable, then re-index the per-corner index buffer.

package mesh

import (
	"math"
	"sort"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// WeldOptions bounds when two value-pool entries are considered equal.
//
// Fields:
//   - EpsilonAbs — absolute per-channel tolerance.
//   - EpsilonRel — relative per-channel tolerance, scaled by the larger
//     magnitude.
//   - AngleAbs   — angular tolerance in radians, applied in addition to
//     the value tolerance when the attribute's usage is directional
//     (Normal/Tangent/Bitangent). Zero disables the angular check.
type WeldOptions struct {
	EpsilonAbs float64
	EpsilonRel float64
	AngleAbs   float64
}

// DefaultWeldOptions merges entries equal up to tight absolute rounding
// noise.
func DefaultWeldOptions() WeldOptions {
	return WeldOptions{EpsilonAbs: 1e-12}
}

// WeldIndexedAttribute merges value-pool entries of the indexed attribute
// id that are within tolerance of each other and re-points the index
// buffer at the surviving representatives.
//
// Contract:
//   - Candidate pairs are drawn per vertex: only pool entries referenced
//     by corners sitting on a common vertex can merge, so the output pool
//     size tracks index-usage classes (per vertex, not per corner).
//   - The output pool size is exactly the number of resulting
//     equivalence classes; representatives keep ascending pool order.
//   - Connectivity is initialized on demand and survives the weld
//     (welding touches no facet topology).
//
// Complexity: O(corners·ring²·channels) worst case; rings are small.
func (m *Mesh) WeldIndexedAttribute(id attr.ID, opts WeldOptions) error {
	a, err := m.attrs.GetByID(id)
	if err != nil {
		return err
	}
	idxBuf, err := a.Indices()
	if err != nil {
		return err
	}
	if !m.HasEdges() {
		if err = m.InitializeEdges(); err != nil {
			return err
		}
	}

	indices, err := buffer.View[uint32](idxBuf)
	if err != nil {
		return err
	}
	numValues := a.Values().Len()

	// Union-find over pool entries.
	parent := make([]int, numValues)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}

		return i
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri == rj {
			return
		}
		if ri > rj {
			ri, rj = rj, ri
		}
		parent[rj] = ri // lower index wins, keeps ascending representatives
	}

	eq := weldComparator(a, opts)
	for v := 0; v < m.numVertices; v++ {
		corners, cErr := m.CornersAroundVertex(v)
		if cErr != nil {
			return cErr
		}
		var ring []int
		for c := range corners {
			ring = append(ring, int(indices[c]))
		}
		sort.Ints(ring)
		ring = dedupSorted(ring)
		for i := 0; i < len(ring); i++ {
			for j := i + 1; j < len(ring); j++ {
				if find(ring[i]) == find(ring[j]) {
					continue
				}
				ok, eErr := eq(ring[i], ring[j])
				if eErr != nil {
					return eErr
				}
				if ok {
					union(ring[i], ring[j])
				}
			}
		}
	}

	// Compact the pool to one entry per equivalence class.
	newID := make([]int, numValues)
	var poolNewToOld []int
	for i := 0; i < numValues; i++ {
		r := find(i)
		if r == i {
			newID[i] = len(poolNewToOld)
			poolNewToOld = append(poolNewToOld, i)
		} else {
			newID[i] = newID[r]
		}
	}
	if len(poolNewToOld) == numValues {
		return nil // nothing merged
	}

	newValues, err := a.Values().Gather(poolNewToOld)
	if err != nil {
		return err
	}
	newIndices, err := buffer.Make[uint32](len(indices), 1)
	if err != nil {
		return err
	}
	dst, err := buffer.ViewMut[uint32](newIndices)
	if err != nil {
		return err
	}
	for c, old := range indices {
		dst[c] = uint32(newID[old])
	}

	if err = a.Rewrap(newValues); err != nil {
		return err
	}

	return a.RewrapIndices(newIndices)
}

// weldComparator builds the tolerance predicate over two pool entries.
func weldComparator(a *attr.Attribute, opts WeldOptions) func(i, j int) (bool, error) {
	vals := a.Values()
	ch := a.Channels()
	directional := a.Usage().IsDirection() && opts.AngleAbs > 0

	return func(i, j int) (bool, error) {
		var dot, ni, nj float64
		for c := 0; c < ch; c++ {
			vi, err := vals.GetFloat(i, c)
			if err != nil {
				return false, err
			}
			vj, err := vals.GetFloat(j, c)
			if err != nil {
				return false, err
			}
			tol := opts.EpsilonAbs + opts.EpsilonRel*math.Max(math.Abs(vi), math.Abs(vj))
			if math.Abs(vi-vj) > tol {
				return false, nil
			}
			dot += vi * vj
			ni += vi * vi
			nj += vj * vj
		}
		if directional {
			denom := math.Sqrt(ni) * math.Sqrt(nj)
			if denom == 0 {
				return false, nil
			}
			cosAngle := math.Min(1, math.Max(-1, dot/denom))
			if math.Acos(cosAngle) > opts.AngleAbs {
				return false, nil
			}
		}

		return true, nil
	}
}

// dedupSorted removes duplicates from a sorted slice in place.
func dedupSorted(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, x := range s[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}

	return out
}
