// File: edges.go
// Role: lazy edge/corner connectivity: InitializeEdges builds the derived
//       adjacency; queries and one-ring iterators read it; every
//       facet-topology edit drops it.
// Determinism:
//   - Without a user edge list, edge ids follow first-encounter order over
//     corners in facet-then-local order.
//   - Corner chains enumerate in ascending corner id.

package mesh

import (
	"fmt"
	"iter"

	"github.com/halveth/surfmesh/attr"
)

// connectivity is the derived adjacency over corners, vertices and edges.
// Chains are intrusive linked lists terminated by invalidIndex, the
// encoding that stays O(corners) regardless of manifoldness.
type connectivity struct {
	edgeVertices           []uint32 // 2 scalars per edge, (min,max) vertex pair
	cornerToEdge           []uint32 // len = numCorners
	edgeToFirstCorner      []uint32 // len = numEdges
	nextCornerAroundEdge   []uint32 // len = numCorners
	vertexToFirstCorner    []uint32 // len = numVertices
	nextCornerAroundVertex []uint32 // len = numCorners
}

// clearConnectivity drops the derived adjacency and empties every
// user-facing edge attribute. Reads after this fail loudly until
// InitializeEdges runs again.
func (m *Mesh) clearConnectivity() {
	if m.conn == nil {
		return
	}
	m.conn = nil
	_ = m.forEachAttr(func(a *attr.Attribute) error {
		if a.Element() == attr.Edge {
			return a.Values().Resize(0, 0)
		}

		return nil
	})
}

// ClearEdges drops the edge connectivity explicitly.
func (m *Mesh) ClearEdges() { m.clearConnectivity() }

// HasEdges reports whether connectivity is currently initialized.
func (m *Mesh) HasEdges() bool { return m.conn != nil }

// requireEdges gates every connectivity-dependent query.
func (m *Mesh) requireEdges() (*connectivity, error) {
	if m.conn == nil {
		return nil, ErrEdgesNotInitialized
	}

	return m.conn, nil
}

// nextCornerInFacet returns the cyclic successor of corner c within its
// facet.
func (m *Mesh) nextCornerInFacet(c int) int {
	f, _ := m.CornerFacet(c)
	begin, end := m.FacetCornerBegin(f), m.FacetCornerEnd(f)
	if c+1 == end {
		return begin
	}

	return c + 1
}

// prevCornerInFacet returns the cyclic predecessor of corner c within its
// facet.
func (m *Mesh) prevCornerInFacet(c int) int {
	f, _ := m.CornerFacet(c)
	begin, end := m.FacetCornerBegin(f), m.FacetCornerEnd(f)
	if c == begin {
		return end - 1
	}

	return c - 1
}

// edgeKey is the unordered vertex pair identifying an edge.
type edgeKey struct{ lo, hi uint32 }

func makeEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}

	return edgeKey{lo: a, hi: b}
}

// InitializeEdges builds the edge/corner connectivity from the current
// facets.
//
// Contract:
//   - Corners are visited in facet-then-local order; without userEdges,
//     edge ids are assigned in first-encounter order over that scan.
//   - userEdges, when given, fixes both the edge ordering and the
//     vertex pairing: it must list every edge induced by the facets
//     exactly once, and nothing else (ErrInconsistentTopology otherwise).
//   - Edges with one incident corner are boundary; three or more are
//     non-manifold and are represented, not rejected.
//   - Existing user edge attributes are resized to the new edge count.
//
// Calling InitializeEdges on an already-initialized mesh rebuilds from
// scratch.
//
// Complexity: O(corners) expected (hash-map dedup).
func (m *Mesh) InitializeEdges(userEdges ...[2]int) error {
	verts := m.cornerVerts()
	conn := &connectivity{
		cornerToEdge:           make([]uint32, m.numCorners),
		nextCornerAroundEdge:   make([]uint32, m.numCorners),
		vertexToFirstCorner:    make([]uint32, m.numVertices),
		nextCornerAroundVertex: make([]uint32, m.numCorners),
	}

	ids := make(map[edgeKey]uint32, m.numCorners)
	if len(userEdges) > 0 {
		for i, uv := range userEdges {
			if uv[0] < 0 || uv[0] >= m.numVertices || uv[1] < 0 || uv[1] >= m.numVertices {
				return fmt.Errorf("%w: user edge %d references vertex pair (%d,%d)",
					ErrInconsistentTopology, i, uv[0], uv[1])
			}
			key := makeEdgeKey(uint32(uv[0]), uint32(uv[1]))
			if _, dup := ids[key]; dup {
				return fmt.Errorf("%w: duplicate user edge (%d,%d)",
					ErrInconsistentTopology, uv[0], uv[1])
			}
			ids[key] = uint32(i)
			conn.edgeVertices = append(conn.edgeVertices, uint32(uv[0]), uint32(uv[1]))
		}
	}

	seen := make([]bool, len(userEdges))
	for c := 0; c < m.numCorners; c++ {
		key := makeEdgeKey(verts[c], verts[m.nextCornerInFacet(c)])
		e, ok := ids[key]
		switch {
		case ok && len(userEdges) > 0:
			seen[e] = true
		case ok:
			// already assigned by an earlier corner
		case len(userEdges) > 0:
			return fmt.Errorf("%w: facet edge (%d,%d) missing from user edge list",
				ErrInconsistentTopology, key.lo, key.hi)
		default:
			e = uint32(len(ids))
			ids[key] = e
			conn.edgeVertices = append(conn.edgeVertices, key.lo, key.hi)
		}
		conn.cornerToEdge[c] = e
	}
	for i, used := range seen {
		if !used {
			return fmt.Errorf("%w: user edge (%d,%d) matches no facet edge",
				ErrInconsistentTopology, userEdges[i][0], userEdges[i][1])
		}
	}

	numEdges := len(ids)
	conn.edgeToFirstCorner = make([]uint32, numEdges)
	for e := range conn.edgeToFirstCorner {
		conn.edgeToFirstCorner[e] = invalidIndex
	}
	for v := range conn.vertexToFirstCorner {
		conn.vertexToFirstCorner[v] = invalidIndex
	}
	// Reverse scan so each chain enumerates ascending corner ids.
	for c := m.numCorners - 1; c >= 0; c-- {
		e := conn.cornerToEdge[c]
		conn.nextCornerAroundEdge[c] = conn.edgeToFirstCorner[e]
		conn.edgeToFirstCorner[e] = uint32(c)

		v := verts[c]
		conn.nextCornerAroundVertex[c] = conn.vertexToFirstCorner[v]
		conn.vertexToFirstCorner[v] = uint32(c)
	}

	m.conn = conn

	// Edge attributes follow the new count.
	return m.forEachAttr(func(a *attr.Attribute) error {
		if a.Element() == attr.Edge {
			return a.Values().Resize(numEdges, a.DefaultValue())
		}

		return nil
	})
}

// EdgeVertices returns the unordered vertex pair of edge e.
func (m *Mesh) EdgeVertices(e int) ([2]int, error) {
	conn, err := m.requireEdges()
	if err != nil {
		return [2]int{}, err
	}
	if e < 0 || e >= m.NumEdges() {
		return [2]int{}, fmt.Errorf("%w: edge %d of %d", ErrInvalidArgument, e, m.NumEdges())
	}

	return [2]int{int(conn.edgeVertices[2*e]), int(conn.edgeVertices[2*e+1])}, nil
}

// CornerEdge returns the edge spanned by corner c and its facet successor.
func (m *Mesh) CornerEdge(c int) (int, error) {
	conn, err := m.requireEdges()
	if err != nil {
		return 0, err
	}
	if c < 0 || c >= m.numCorners {
		return 0, fmt.Errorf("%w: corner %d of %d", ErrInvalidArgument, c, m.numCorners)
	}

	return int(conn.cornerToEdge[c]), nil
}

// Edge returns the edge on side lv of facet f.
func (m *Mesh) Edge(f, lv int) (int, error) {
	if _, err := m.requireEdges(); err != nil {
		return 0, err
	}
	if f < 0 || f >= m.numFacets {
		return 0, fmt.Errorf("%w: facet %d of %d", ErrInvalidArgument, f, m.numFacets)
	}
	if lv < 0 || lv >= m.FacetSize(f) {
		return 0, fmt.Errorf("%w: side %d of %d", ErrInvalidArgument, lv, m.FacetSize(f))
	}

	return m.CornerEdge(m.FacetCornerBegin(f) + lv)
}

// FirstCornerAroundEdge returns the lowest corner id incident to edge e,
// or -1 for an edge with no incident corner.
func (m *Mesh) FirstCornerAroundEdge(e int) (int, error) {
	conn, err := m.requireEdges()
	if err != nil {
		return 0, err
	}
	if e < 0 || e >= m.NumEdges() {
		return 0, fmt.Errorf("%w: edge %d of %d", ErrInvalidArgument, e, m.NumEdges())
	}
	c := conn.edgeToFirstCorner[e]
	if c == invalidIndex {
		return -1, nil
	}

	return int(c), nil
}

// FirstCornerAroundVertex returns the lowest corner id sitting on vertex
// v, or -1 for an isolated vertex.
func (m *Mesh) FirstCornerAroundVertex(v int) (int, error) {
	conn, err := m.requireEdges()
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= m.numVertices {
		return 0, fmt.Errorf("%w: vertex %d of %d", ErrInvalidArgument, v, m.numVertices)
	}
	c := conn.vertexToFirstCorner[v]
	if c == invalidIndex {
		return -1, nil
	}

	return int(c), nil
}

// CountCornersAroundEdge returns the number of incident corners: 1 on the
// boundary, 2 on a manifold interior edge, 3+ on a non-manifold edge.
func (m *Mesh) CountCornersAroundEdge(e int) (int, error) {
	seq, err := m.CornersAroundEdge(e)
	if err != nil {
		return 0, err
	}
	n := 0
	for range seq {
		n++
	}

	return n, nil
}

// CountCornersAroundVertex returns the number of corners sitting on v.
func (m *Mesh) CountCornersAroundVertex(v int) (int, error) {
	seq, err := m.CornersAroundVertex(v)
	if err != nil {
		return 0, err
	}
	n := 0
	for range seq {
		n++
	}

	return n, nil
}

// IsBoundaryEdge reports whether exactly one corner is incident to e.
func (m *Mesh) IsBoundaryEdge(e int) (bool, error) {
	n, err := m.CountCornersAroundEdge(e)
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

// CornersAroundEdge returns a restartable sequence of the corners incident
// to edge e, in ascending corner id. Safe on non-manifold edges: the
// explicit incidence chain is walked, never a twin-halfedge rotation.
func (m *Mesh) CornersAroundEdge(e int) (iter.Seq[int], error) {
	conn, err := m.requireEdges()
	if err != nil {
		return nil, err
	}
	if e < 0 || e >= m.NumEdges() {
		return nil, fmt.Errorf("%w: edge %d of %d", ErrInvalidArgument, e, m.NumEdges())
	}

	return func(yield func(int) bool) {
		for c := conn.edgeToFirstCorner[e]; c != invalidIndex; c = conn.nextCornerAroundEdge[c] {
			if !yield(int(c)) {
				return
			}
		}
	}, nil
}

// CornersAroundVertex returns a restartable sequence of the corners
// sitting on vertex v, in ascending corner id.
func (m *Mesh) CornersAroundVertex(v int) (iter.Seq[int], error) {
	conn, err := m.requireEdges()
	if err != nil {
		return nil, err
	}
	if v < 0 || v >= m.numVertices {
		return nil, fmt.Errorf("%w: vertex %d of %d", ErrInvalidArgument, v, m.numVertices)
	}

	return func(yield func(int) bool) {
		for c := conn.vertexToFirstCorner[v]; c != invalidIndex; c = conn.nextCornerAroundVertex[c] {
			if !yield(int(c)) {
				return
			}
		}
	}, nil
}

// EdgesAroundVertex returns a sequence of the distinct edges incident to
// vertex v, first-encounter order over the corner chain.
func (m *Mesh) EdgesAroundVertex(v int) (iter.Seq[int], error) {
	corners, err := m.CornersAroundVertex(v)
	if err != nil {
		return nil, err
	}
	conn := m.conn

	return func(yield func(int) bool) {
		emitted := make(map[int]struct{})
		emit := func(e int) bool {
			if _, dup := emitted[e]; dup {
				return true
			}
			emitted[e] = struct{}{}

			return yield(e)
		}
		for c := range corners {
			// The outgoing side and the incoming side both touch v.
			if !emit(int(conn.cornerToEdge[c])) {
				return
			}
			if !emit(int(conn.cornerToEdge[m.prevCornerInFacet(c)])) {
				return
			}
		}
	}, nil
}

// FacetsAroundEdge returns a sequence of the distinct facets incident to
// edge e. Non-manifold edges enumerate every incident facet exactly once.
func (m *Mesh) FacetsAroundEdge(e int) (iter.Seq[int], error) {
	corners, err := m.CornersAroundEdge(e)
	if err != nil {
		return nil, err
	}

	return m.facetsOfCorners(corners), nil
}

// FacetsAroundVertex returns a sequence of the distinct facets incident to
// vertex v.
func (m *Mesh) FacetsAroundVertex(v int) (iter.Seq[int], error) {
	corners, err := m.CornersAroundVertex(v)
	if err != nil {
		return nil, err
	}

	return m.facetsOfCorners(corners), nil
}

// FacetsAroundFacet returns a sequence of the distinct facets sharing an
// edge with facet f, excluding f itself.
func (m *Mesh) FacetsAroundFacet(f int) (iter.Seq[int], error) {
	if _, err := m.requireEdges(); err != nil {
		return nil, err
	}
	if f < 0 || f >= m.numFacets {
		return nil, fmt.Errorf("%w: facet %d of %d", ErrInvalidArgument, f, m.numFacets)
	}
	conn := m.conn

	return func(yield func(int) bool) {
		emitted := map[int]struct{}{f: {}}
		for c := m.FacetCornerBegin(f); c < m.FacetCornerEnd(f); c++ {
			e := conn.cornerToEdge[c]
			for oc := conn.edgeToFirstCorner[e]; oc != invalidIndex; oc = conn.nextCornerAroundEdge[oc] {
				of, _ := m.CornerFacet(int(oc))
				if _, dup := emitted[of]; dup {
					continue
				}
				emitted[of] = struct{}{}
				if !yield(of) {
					return
				}
			}
		}
	}, nil
}

// facetsOfCorners maps a corner sequence to its distinct facets.
func (m *Mesh) facetsOfCorners(corners iter.Seq[int]) iter.Seq[int] {
	return func(yield func(int) bool) {
		emitted := make(map[int]struct{})
		for c := range corners {
			f, _ := m.CornerFacet(c)
			if _, dup := emitted[f]; dup {
				continue
			}
			emitted[f] = struct{}{}
			if !yield(f) {
				return
			}
		}
	}
}
