// File: attribute.go
// Role: the Attribute itself — metadata plus one (direct) or two (indexed)
//       storage buffers — and its mutation surface: Rewrap,
//       CreateInternalCopy, InsertElements, Clear.

package attr

import (
	"fmt"

	"github.com/halveth/surfmesh/buffer"
)

// Attribute is a named, typed array of per-element data. Direct attributes
// carry one buffer of values; Indexed attributes additionally carry a
// per-corner index buffer selecting into the value pool.
//
// Attributes are created through a Set and must not be shared across Sets;
// identity (ID, name) lives in the owning Set.
type Attribute struct {
	id       ID
	name     string
	element  Element
	usage    Usage
	channels int
	dtype    buffer.ScalarType

	defaultValue float64

	values  *buffer.Buffer
	indices *buffer.Buffer // nil unless element == Indexed
}

// ID returns the attribute's stable identifier within its Set.
func (a *Attribute) ID() ID { return a.id }

// Name returns the current name. Names can change via Set.Rename; IDs cannot.
func (a *Attribute) Name() string { return a.name }

// Element returns the element kind the attribute is attached to.
func (a *Attribute) Element() Element { return a.element }

// Usage returns the usage tag.
func (a *Attribute) Usage() Usage { return a.usage }

// Channels returns the per-element channel count.
func (a *Attribute) Channels() int { return a.channels }

// Type returns the scalar type of the value buffer.
func (a *Attribute) Type() buffer.ScalarType { return a.dtype }

// IsIndexed reports whether the attribute carries an index buffer.
func (a *Attribute) IsIndexed() bool { return a.element == Indexed }

// IsReserved reports whether the attribute's name carries the '$' prefix.
func (a *Attribute) IsReserved() bool { return IsReservedName(a.name) }

// Values returns the value buffer. For direct attributes this is the
// per-element data; for indexed attributes it is the deduplicated pool.
func (a *Attribute) Values() *buffer.Buffer { return a.values }

// Indices returns the per-corner index buffer of an indexed attribute.
func (a *Attribute) Indices() (*buffer.Buffer, error) {
	if a.indices == nil {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotIndexed, a.name, a.element)
	}

	return a.indices, nil
}

// DefaultValue returns the scalar used to fill new elements on growth.
func (a *Attribute) DefaultValue() float64 { return a.defaultValue }

// SetDefaultValue replaces the growth fill value.
func (a *Attribute) SetDefaultValue(v float64) { a.defaultValue = v }

// SetGrowthPolicy sets the growth policy on the value buffer (and the
// index buffer, when present).
func (a *Attribute) SetGrowthPolicy(p buffer.GrowthPolicy) {
	a.values.SetGrowthPolicy(p)
	if a.indices != nil {
		a.indices.SetGrowthPolicy(p)
	}
}

// Len returns the element count of the value buffer.
func (a *Attribute) Len() int { return a.values.Len() }

// Rewrap atomically replaces the value buffer. Any previously wrapped
// external memory is released (the attribute simply drops its reference;
// the caller's memory is never freed), the new buffer is adopted as-is,
// and attribute-level metadata (usage, default value) is preserved.
//
// The replacement must match the attribute's scalar type and channel count.
func (a *Attribute) Rewrap(values *buffer.Buffer) error {
	if values == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if values.Type() != a.dtype || values.Channels() != a.channels {
		return fmt.Errorf("%w: rewrap %s×%d over %s×%d", ErrInvalidArgument,
			values.Type(), values.Channels(), a.dtype, a.channels)
	}
	a.values = values

	return nil
}

// RewrapIndices atomically replaces the index buffer of an indexed
// attribute. The replacement must be a single-channel Uint32 buffer.
func (a *Attribute) RewrapIndices(indices *buffer.Buffer) error {
	if a.element != Indexed {
		return fmt.Errorf("%w: %q is %s", ErrNotIndexed, a.name, a.element)
	}
	if indices == nil || indices.Type() != buffer.Uint32 || indices.Channels() != 1 {
		return fmt.Errorf("%w: index buffer must be a 1-channel %s buffer",
			ErrInvalidArgument, buffer.Uint32)
	}
	a.indices = indices

	return nil
}

// CreateInternalCopy promotes external storage (values and indices alike)
// to internal copies. Idempotent when already internal.
func (a *Attribute) CreateInternalCopy() {
	a.values.CreateInternalCopy()
	if a.indices != nil {
		a.indices.CreateInternalCopy()
	}
}

// InsertElements appends n elements filled with the default value, growing
// the value buffer under its growth policy.
func (a *Attribute) InsertElements(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: n=%d", ErrInvalidArgument, n)
	}

	return a.values.Resize(a.values.Len()+n, a.defaultValue)
}

// Clear drops every element (and every index, when present) without
// reallocating.
func (a *Attribute) Clear() error {
	if err := a.values.Resize(0, 0); err != nil {
		return err
	}
	if a.indices != nil {
		return a.indices.Resize(0, 0)
	}

	return nil
}

// InsertValues appends the given scalars to a's value buffer; len(vals)
// must be a multiple of the channel count. The scalar type of T must match
// the attribute's.
func InsertValues[T buffer.Scalar](a *Attribute, vals []T) error {
	return buffer.Append(a.values, vals)
}

// clone returns a deep (deep=true: all storage copied, Internal) or
// shallow (buffers shared) duplicate carrying the same id/name/metadata.
func (a *Attribute) clone(deep bool) *Attribute {
	out := *a
	if deep {
		out.values = a.values.Clone()
		if a.indices != nil {
			out.indices = a.indices.Clone()
		}
	}

	return &out
}
