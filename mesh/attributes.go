// File: attributes.go
// Role: mesh-level attribute surface: creation (explicit, inferred,
//       indexed, wrapped), lookup, rename/duplicate/delete, filtered
//       listing. Newly created attributes are sized to the live element
//       count immediately.

package mesh

import (
	"fmt"

	"github.com/halveth/surfmesh/attr"
	"github.com/halveth/surfmesh/buffer"
)

// Attributes exposes the underlying attribute set. Structural slots
// ('$'-prefixed) live here too; prefer the mesh-level methods, which keep
// element counts consistent.
func (m *Mesh) Attributes() *attr.Set { return m.attrs }

// CreateAttribute registers a new attribute keyed on element, sized to the
// element's live count and filled with the default value. Element and
// dtype are explicit here; use CreateAttributeFrom to infer the element
// from a value slice.
func (m *Mesh) CreateAttribute(
	name string,
	element attr.Element,
	usage attr.Usage,
	channels int,
	dtype buffer.ScalarType,
	opts ...attr.Option,
) (attr.ID, error) {
	a, err := m.attrs.Create(name, element, usage, channels, dtype, opts...)
	if err != nil {
		return attr.InvalidID, err
	}
	if n := m.elementCount(element); n > 0 && a.Len() == 0 {
		if err = a.InsertElements(n); err != nil {
			return attr.InvalidID, err
		}
	}
	if element == attr.Indexed {
		idx, iErr := a.Indices()
		if iErr != nil {
			return attr.InvalidID, iErr
		}
		if idx.Len() == 0 && m.numCorners > 0 {
			if err = idx.Resize(m.numCorners, 0); err != nil {
				return attr.InvalidID, err
			}
		}
	}

	return a.ID(), nil
}

// CreateAttributeFrom registers a new attribute initialized from values,
// inferring the element kind from the element count len(values)/channels:
// it must match exactly one of the vertex, facet and corner counts.
// Matching several (or none) is ambiguous and fails with
// ErrInvalidArgument; pass the element explicitly via CreateAttribute
// plus attr.WithValues in that case.
func CreateAttributeFrom[T buffer.Scalar](
	m *Mesh,
	name string,
	usage attr.Usage,
	channels int,
	values []T,
	opts ...attr.Option,
) (attr.ID, error) {
	if channels <= 0 || len(values)%channels != 0 {
		return attr.InvalidID, fmt.Errorf("%w: %d values over %d channels",
			ErrInvalidArgument, len(values), channels)
	}
	element, err := m.inferElement(len(values) / channels)
	if err != nil {
		return attr.InvalidID, err
	}
	b, err := buffer.Make[T](len(values)/channels, channels)
	if err != nil {
		return attr.InvalidID, err
	}
	dst, err := buffer.ViewMut[T](b)
	if err != nil {
		return attr.InvalidID, err
	}
	copy(dst, values)

	a, err := m.attrs.Create(name, element, usage, channels, b.Type(),
		append(opts, attr.WithValues(b))...)
	if err != nil {
		return attr.InvalidID, err
	}

	return a.ID(), nil
}

// inferElement maps an element count to the unique matching element kind.
func (m *Mesh) inferElement(n int) (attr.Element, error) {
	var (
		match attr.Element
		hits  int
	)
	for _, e := range []attr.Element{attr.Vertex, attr.Facet, attr.Corner} {
		if m.elementCount(e) == n {
			match = e
			hits++
		}
	}
	switch hits {
	case 1:
		return match, nil
	case 0:
		return 0, fmt.Errorf("%w: %d elements matches no mesh count (v=%d f=%d c=%d)",
			ErrInvalidArgument, n, m.numVertices, m.numFacets, m.numCorners)
	default:
		return 0, fmt.Errorf("%w: %d elements is ambiguous (v=%d f=%d c=%d); pass the element explicitly",
			ErrInvalidArgument, n, m.numVertices, m.numFacets, m.numCorners)
	}
}

// CreateIndexedAttribute registers an indexed attribute: an empty value
// pool plus a zeroed per-corner index buffer.
func (m *Mesh) CreateIndexedAttribute(
	name string,
	usage attr.Usage,
	channels int,
	dtype buffer.ScalarType,
	opts ...attr.Option,
) (attr.ID, error) {
	return m.CreateAttribute(name, attr.Indexed, usage, channels, dtype, opts...)
}

// CreateIndexedAttributeFrom registers an indexed attribute initialized
// with the given value pool and per-corner indices. len(indices) must
// equal the corner count, and every index must address the pool.
func CreateIndexedAttributeFrom[T buffer.Scalar](
	m *Mesh,
	name string,
	usage attr.Usage,
	channels int,
	values []T,
	indices []uint32,
	opts ...attr.Option,
) (attr.ID, error) {
	if channels <= 0 || len(values)%channels != 0 {
		return attr.InvalidID, fmt.Errorf("%w: %d values over %d channels",
			ErrInvalidArgument, len(values), channels)
	}
	if len(indices) != m.numCorners {
		return attr.InvalidID, fmt.Errorf("%w: %d indices for %d corners",
			ErrInvalidArgument, len(indices), m.numCorners)
	}
	numValues := len(values) / channels
	for _, i := range indices {
		if int(i) >= numValues {
			return attr.InvalidID, fmt.Errorf("%w: index %d addresses a pool of %d",
				ErrInvalidArgument, i, numValues)
		}
	}

	vb, err := buffer.Make[T](numValues, channels)
	if err != nil {
		return attr.InvalidID, err
	}
	vdst, err := buffer.ViewMut[T](vb)
	if err != nil {
		return attr.InvalidID, err
	}
	copy(vdst, values)

	ib, err := buffer.Make[uint32](len(indices), 1)
	if err != nil {
		return attr.InvalidID, err
	}
	idst, err := buffer.ViewMut[uint32](ib)
	if err != nil {
		return attr.InvalidID, err
	}
	copy(idst, indices)

	a, err := m.attrs.Create(name, attr.Indexed, usage, channels, vb.Type(),
		append(opts, attr.WithValues(vb), attr.WithIndices(ib))...)
	if err != nil {
		return attr.InvalidID, err
	}

	return a.ID(), nil
}

// WrapIndexedAttributeFrom registers an indexed attribute over the
// caller's slices without copying: values holds the shared pool, indices
// one entry per corner addressing it. Both slices stay caller-owned.
func WrapIndexedAttributeFrom[T buffer.Scalar](
	m *Mesh,
	name string,
	usage attr.Usage,
	channels int,
	values []T,
	indices []uint32,
	opts ...attr.Option,
) (attr.ID, error) {
	if channels <= 0 || len(values)%channels != 0 {
		return attr.InvalidID, fmt.Errorf("%w: %d values over %d channels",
			ErrInvalidArgument, len(values), channels)
	}
	if len(indices) != m.numCorners {
		return attr.InvalidID, fmt.Errorf("%w: %d indices for %d corners",
			ErrInvalidArgument, len(indices), m.numCorners)
	}
	numValues := len(values) / channels
	for _, i := range indices {
		if int(i) >= numValues {
			return attr.InvalidID, fmt.Errorf("%w: index %d addresses a pool of %d",
				ErrInvalidArgument, i, numValues)
		}
	}

	vb, err := buffer.Wrap(values, numValues, channels)
	if err != nil {
		return attr.InvalidID, err
	}
	ib, err := buffer.Wrap(indices, len(indices), 1)
	if err != nil {
		return attr.InvalidID, err
	}
	a, err := m.attrs.Create(name, attr.Indexed, usage, channels, vb.Type(),
		append(opts, attr.WithValues(vb), attr.WithIndices(ib))...)
	if err != nil {
		return attr.InvalidID, err
	}

	return a.ID(), nil
}

// WrapAttributeFrom registers an attribute over the caller's slice without
// copying. The element is explicit; the slice must hold count·channels
// scalars where count is the element's live count.
func WrapAttributeFrom[T buffer.Scalar](
	m *Mesh,
	name string,
	element attr.Element,
	usage attr.Usage,
	channels int,
	data []T,
	opts ...attr.Option,
) (attr.ID, error) {
	count := m.elementCount(element)
	if count < 0 {
		return attr.InvalidID, fmt.Errorf("%w: cannot wrap element kind %s",
			ErrInvalidArgument, element)
	}
	b, err := buffer.Wrap(data, count, channels)
	if err != nil {
		return attr.InvalidID, err
	}
	a, err := m.attrs.Create(name, element, usage, channels, b.Type(),
		append(opts, attr.WithValues(b))...)
	if err != nil {
		return attr.InvalidID, err
	}

	return a.ID(), nil
}

// GetAttribute returns the attribute registered under name.
func (m *Mesh) GetAttribute(name string) (*attr.Attribute, error) {
	return m.attrs.Get(name)
}

// GetAttributeByID returns the attribute with the given id.
func (m *Mesh) GetAttributeByID(id attr.ID) (*attr.Attribute, error) {
	return m.attrs.GetByID(id)
}

// HasAttribute reports whether name is registered.
func (m *Mesh) HasAttribute(name string) bool { return m.attrs.Has(name) }

// AttributeID returns the id registered under name, or attr.InvalidID.
func (m *Mesh) AttributeID(name string) attr.ID { return m.attrs.IDOf(name) }

// AttributeHandle returns a revalidating handle for id.
func (m *Mesh) AttributeHandle(id attr.ID) attr.Handle { return m.attrs.Handle(id) }

// DeleteAttribute removes the attribute registered under name. Structural
// ('$'-prefixed) attributes are protected.
func (m *Mesh) DeleteAttribute(name string) error { return m.attrs.Delete(name) }

// RenameAttribute changes an attribute's name, keeping its id.
func (m *Mesh) RenameAttribute(oldName, newName string) error {
	return m.attrs.Rename(oldName, newName)
}

// DuplicateAttribute deep-copies the attribute registered under oldName
// into a new attribute named newName, returning the new id.
func (m *Mesh) DuplicateAttribute(oldName, newName string) (attr.ID, error) {
	src, err := m.attrs.Get(oldName)
	if err != nil {
		return attr.InvalidID, err
	}
	opts := []attr.Option{
		attr.WithValues(src.Values().Clone()),
		attr.WithDefaultValue(src.DefaultValue()),
	}
	if idx, iErr := src.Indices(); iErr == nil {
		opts = append(opts, attr.WithIndices(idx.Clone()))
	}
	dup, err := m.attrs.Create(newName, src.Element(), src.Usage(), src.Channels(),
		src.Type(), opts...)
	if err != nil {
		return attr.InvalidID, err
	}

	return dup.ID(), nil
}

// MatchAttributes lists attribute ids by element/usage filters in creation
// order. Empty filter slices match nothing; reserved attributes are
// excluded unless opted in.
func (m *Mesh) MatchAttributes(opts attr.MatchOptions) []attr.ID {
	return m.attrs.Match(opts)
}
