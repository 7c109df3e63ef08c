// File: buffer.go
// Role: Buffer lifecycle & sizing: New, Resize, CreateInternalCopy, Clone,
//       Gather, float-path element access.
// Determinism:
//   - Resize consults the growth policy on every call; no hidden
//     copy-on-write paths exist.
//   - The External→Internal ownership transition is one-way.

package buffer

import "fmt"

// maxScalars bounds elems*channels to guard against overflowing extents
// from hostile wrap requests.
const maxScalars = 1 << 48

// Buffer is a typed, channelled, resizable storage region. The zero value
// is not usable; construct with New, Make, Wrap or WrapConst.
type Buffer struct {
	dt       ScalarType
	elems    int
	channels int
	owner    Ownership
	readonly bool
	policy   GrowthPolicy
	st       store
}

// New allocates a zero-initialized Internal buffer of elems elements with
// the given channel count and scalar type.
//
// Complexity: O(elems·channels).
func New(dt ScalarType, elems, channels int) (*Buffer, error) {
	if err := checkExtents(dt, elems, channels); err != nil {
		return nil, err
	}

	return &Buffer{
		dt:       dt,
		elems:    elems,
		channels: channels,
		owner:    Internal,
		st:       newStore(dt, elems*channels),
	}, nil
}

// checkExtents validates a (dtype, elems, channels) triple.
func checkExtents(dt ScalarType, elems, channels int) error {
	if !dt.Valid() {
		return fmt.Errorf("%w: invalid scalar type tag %d", ErrInvalidArgument, dt)
	}
	if elems < 0 || channels <= 0 {
		return fmt.Errorf("%w: elems=%d channels=%d", ErrInvalidArgument, elems, channels)
	}
	if int64(elems)*int64(channels) > maxScalars {
		return fmt.Errorf("%w: %d×%d scalars exceeds sane bound", ErrInvalidArgument, elems, channels)
	}

	return nil
}

// Type returns the buffer's scalar type tag.
func (b *Buffer) Type() ScalarType { return b.dt }

// Len returns the element count (not the scalar count).
func (b *Buffer) Len() int { return b.elems }

// Channels returns the per-element channel count.
func (b *Buffer) Channels() int { return b.channels }

// Ownership reports whether the backing memory is Internal or External.
func (b *Buffer) Ownership() Ownership { return b.owner }

// ReadOnly reports whether mutable access is rejected.
func (b *Buffer) ReadOnly() bool { return b.readonly }

// Capacity returns the element capacity reachable without reallocation.
func (b *Buffer) Capacity() int { return b.st.capScalars() / b.channels }

// GrowthPolicy returns the policy consulted on growth.
func (b *Buffer) GrowthPolicy() GrowthPolicy { return b.policy }

// SetGrowthPolicy replaces the policy consulted on growth.
func (b *Buffer) SetGrowthPolicy(p GrowthPolicy) { b.policy = p }

// Resize sets the element count to elems, filling any new scalars with
// fill (converted to the buffer's scalar type).
//
// Contract:
//   - Shrinking reslices in place and never reallocates, regardless of
//     ownership.
//   - Growing an Internal buffer reallocates freely.
//   - Growing an External buffer consults the growth policy exactly as
//     documented on GrowthPolicy; on ErrCapacity the buffer is unchanged.
//
// Complexity: O(new size) worst case (copy), O(growth) when in place.
func (b *Buffer) Resize(elems int, fill float64) error {
	if err := checkExtents(b.dt, elems, b.channels); err != nil {
		return err
	}
	if b.readonly {
		return fmt.Errorf("%w: resize of const view", ErrReadOnly)
	}
	n := elems * b.channels
	switch {
	case n == b.st.length():
		// no-op
	case n < b.st.length():
		b.st.shrink(n)
	case b.owner == Internal:
		if !b.st.growWithin(n, fill) {
			b.st = b.st.growCopy(n, fill)
		}
	default:
		if err := b.growExternal(n, fill); err != nil {
			return err
		}
	}
	b.elems = elems

	return nil
}

// growExternal applies the growth policy to an External buffer needing n
// scalars. On success the buffer holds n scalars; ownership may have
// flipped to Internal per policy.
func (b *Buffer) growExternal(n int, fill float64) error {
	switch b.policy {
	case AllowWithinCapacity:
		if b.st.growWithin(n, fill) {
			return nil
		}

		return fmt.Errorf("%w: need %d scalars, external capacity is %d",
			ErrCapacity, n, b.st.capScalars())
	case WarnAndCopy, AllowWholesale:
		// Resize rejects read-only views before reaching here, so the
		// copy only ever promotes a writable external buffer.
		b.st = b.st.growCopy(n, fill)
		b.owner = Internal

		return nil
	default: // ErrorOnGrowth
		return fmt.Errorf("%w: growth of external buffer disallowed", ErrCapacity)
	}
}

// CanGrow reports whether Resize(elems, ...) would succeed under the
// current ownership, read-only flag and growth policy, without mutating
// anything. Callers batching growth across several buffers use this to
// keep the batch atomic.
func (b *Buffer) CanGrow(elems int) bool {
	if elems < 0 {
		return false
	}
	n := elems * b.channels
	if n <= b.st.length() {
		return !b.readonly
	}
	if b.readonly {
		return false
	}
	if b.owner == Internal {
		return true
	}
	switch b.policy {
	case AllowWithinCapacity:
		return n <= b.st.capScalars()
	case WarnAndCopy, AllowWholesale:
		return true
	default:
		return false
	}
}

// CreateInternalCopy promotes an External buffer to Internal by copying the
// current contents into fresh storage. Idempotent when already Internal.
//
// Complexity: O(size) when External, O(1) otherwise.
func (b *Buffer) CreateInternalCopy() {
	if b.owner == Internal {
		return
	}
	b.st = b.st.clone()
	b.owner = Internal
	b.readonly = false
}

// Clone returns a deep copy. The clone is always Internal and writable,
// regardless of the receiver's ownership mode.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		dt:       b.dt,
		elems:    b.elems,
		channels: b.channels,
		owner:    Internal,
		policy:   b.policy,
		st:       b.st.clone(),
	}
}

// Gather returns a fresh Internal buffer whose element i is a copy of the
// receiver's element newToOld[i]. Used by permutation and remap paths; the
// copy is lossless (no float round-trip).
//
// Complexity: O(len(newToOld)·channels).
func (b *Buffer) Gather(newToOld []int) (*Buffer, error) {
	for _, old := range newToOld {
		if old < 0 || old >= b.elems {
			return nil, fmt.Errorf("%w: gather index %d out of %d elements",
				ErrInvalidArgument, old, b.elems)
		}
	}

	return &Buffer{
		dt:       b.dt,
		elems:    len(newToOld),
		channels: b.channels,
		owner:    Internal,
		policy:   b.policy,
		st:       b.st.gather(newToOld, b.channels),
	}, nil
}

// ShrinkToFit drops slack capacity by reallocating Internal storage to the
// exact logical size. External views are left untouched (their capacity is
// the caller's business).
func (b *Buffer) ShrinkToFit() {
	if b.owner != Internal || b.st.capScalars() == b.st.length() {
		return
	}
	b.st = b.st.clone()
}

// Fill sets every scalar to v (converted to the buffer's type).
func (b *Buffer) Fill(v float64) error {
	if b.readonly {
		return ErrReadOnly
	}
	b.st.fill(v)

	return nil
}

// GetFloat returns channel ch of element elem, widened to float64. This is
// the lossy type-generic path; use View for lossless typed access.
func (b *Buffer) GetFloat(elem, ch int) (float64, error) {
	if elem < 0 || elem >= b.elems || ch < 0 || ch >= b.channels {
		return 0, fmt.Errorf("%w: (%d,%d) out of %d×%d", ErrInvalidArgument,
			elem, ch, b.elems, b.channels)
	}

	return b.st.getFloat(elem*b.channels + ch), nil
}

// SetFloat stores v (converted to the buffer's type) at channel ch of
// element elem.
func (b *Buffer) SetFloat(elem, ch int, v float64) error {
	if b.readonly {
		return ErrReadOnly
	}
	if elem < 0 || elem >= b.elems || ch < 0 || ch >= b.channels {
		return fmt.Errorf("%w: (%d,%d) out of %d×%d", ErrInvalidArgument,
			elem, ch, b.elems, b.channels)
	}
	b.st.setFloat(elem*b.channels+ch, v)

	return nil
}

// AppendBuffer appends every element of src (same dtype and channel count)
// to b, growing b under its growth policy.
//
// Complexity: O(src size) plus the growth cost.
func (b *Buffer) AppendBuffer(src *Buffer) error {
	if src.dt != b.dt || src.channels != b.channels {
		return fmt.Errorf("%w: append %s×%d into %s×%d", ErrTypeMismatch,
			src.dt, src.channels, b.dt, b.channels)
	}
	oldScalars := b.elems * b.channels
	if err := b.Resize(b.elems+src.elems, 0); err != nil {
		return err
	}
	b.st.copyFrom(oldScalars, src.st, 0, src.elems*src.channels)

	return nil
}
