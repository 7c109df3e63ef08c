// File: combine.go
// Role: concatenation of several meshes into one.

package mesh

import (
	"fmt"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// CombineOptions tunes Combine.
type CombineOptions struct {
	// PreserveAttributes carries over every non-reserved attribute that is
	// present on ALL inputs with an identical signature (name, element,
	// usage, channels, dtype, indexedness). Attributes missing from any
	// input, or whose signatures disagree, are silently dropped. Edge and
	// Value attributes are never carried: edges are derived data rebuilt
	// per mesh, and Value counts are unrelated to mesh size.
	PreserveAttributes bool
}

// Combine concatenates meshes into a fresh mesh: vertices in input order,
// facets in input order with vertex indices shifted by the running vertex
// count. All inputs must share the same dimension. The result is regular
// when all inputs agree on facet size and hybrid otherwise; its edges are
// not initialized.
//
// Complexity: O(total storage of the inputs).
func Combine(meshes []*Mesh, opts CombineOptions) (*Mesh, error) {
	if len(meshes) == 0 {
		return nil, fmt.Errorf("%w: nothing to combine", ErrInvalidArgument)
	}
	dim := meshes[0].dimension
	for i, src := range meshes[1:] {
		if src.dimension != dim {
			return nil, fmt.Errorf("%w: mesh %d has dimension %d, want %d",
				ErrInvalidArgument, i+1, src.dimension, dim)
		}
	}

	out := New(WithDimension(dim))
	for _, src := range meshes {
		pos, err := buffer.View[float64](src.positions().Values())
		if err != nil {
			return nil, err
		}
		if err = out.AddVertices(pos); err != nil {
			return nil, err
		}
	}

	offset := 0
	for _, src := range meshes {
		if src.numFacets > 0 {
			sizes := make([]int, src.numFacets)
			flat := make([]int, 0, src.numCorners)
			cv := src.cornerVerts()
			for f := 0; f < src.numFacets; f++ {
				sizes[f] = src.FacetSize(f)
				for c := src.FacetCornerBegin(f); c < src.FacetCornerEnd(f); c++ {
					flat = append(flat, int(cv[c])+offset)
				}
			}
			if err := out.AddHybrid(sizes, flat); err != nil {
				return nil, err
			}
		}
		offset += src.numVertices
	}

	if opts.PreserveAttributes {
		if err := carryAttributes(out, meshes); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// carryAttributes copies over the attributes shared by every input, in
// the creation order of the first mesh.
func carryAttributes(out *Mesh, meshes []*Mesh) error {
	for _, id := range meshes[0].attrs.IDs() {
		lead, err := meshes[0].attrs.GetByID(id)
		if err != nil {
			return err
		}
		if lead.IsReserved() {
			continue
		}
		switch lead.Element() {
		case attr.Edge, attr.Value:
			continue
		}

		parts := make([]*attr.Attribute, 0, len(meshes))
		parts = append(parts, lead)
		shared := true
		for _, src := range meshes[1:] {
			a, gErr := src.attrs.Get(lead.Name())
			if gErr != nil || !sameSignature(lead, a) {
				shared = false

				break
			}
			parts = append(parts, a)
		}
		if !shared {
			continue
		}

		if err = appendShared(out, lead, parts); err != nil {
			return err
		}
	}

	return nil
}

func sameSignature(a, b *attr.Attribute) bool {
	return a.Element() == b.Element() &&
		a.Usage() == b.Usage() &&
		a.Channels() == b.Channels() &&
		a.Type() == b.Type()
}

// appendShared creates lead's attribute on out and concatenates each
// part's storage into it. Indexed parts concatenate their value pools and
// shift each part's indices by the running pool size.
func appendShared(out *Mesh, lead *attr.Attribute, parts []*attr.Attribute) error {
	dst, err := out.attrs.Create(
		lead.Name(), lead.Element(), lead.Usage(), lead.Channels(), lead.Type(),
		attr.WithDefaultValue(lead.DefaultValue()),
	)
	if err != nil {
		return err
	}

	if lead.Element() != attr.Indexed {
		for _, p := range parts {
			if err = dst.Values().AppendBuffer(p.Values()); err != nil {
				return err
			}
		}

		return nil
	}

	dstIdx, err := dst.Indices()
	if err != nil {
		return err
	}
	poolOffset := 0
	for _, p := range parts {
		if err = dst.Values().AppendBuffer(p.Values()); err != nil {
			return err
		}
		srcIdx, iErr := p.Indices()
		if iErr != nil {
			return iErr
		}
		idx, vErr := buffer.View[uint32](srcIdx)
		if vErr != nil {
			return vErr
		}
		shifted := make([]uint32, len(idx))
		for i, v := range idx {
			shifted[i] = v + uint32(poolOffset)
		}
		if err = buffer.Append(dstIdx, shifted); err != nil {
			return err
		}
		poolOffset += p.Values().Len()
	}

	return nil
}
