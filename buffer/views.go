// File: views.go
// Role: generic typed surface: Make/Wrap/WrapConst constructors and
//       View/ViewMut/Append accessors. All verify the scalar tag before
//       touching storage; a mismatch is ErrTypeMismatch, never a panic.

package buffer

import "fmt"

// Make allocates a zeroed Internal buffer whose scalar type is T.
func Make[T Scalar](elems, channels int) (*Buffer, error) {
	return New(tagOf[T](), elems, channels)
}

// Wrap builds an External buffer viewing the caller's slice. The slice
// stays caller-owned: the buffer never frees it, and the caller must keep
// it alive for every use through the buffer. Capacity for in-place growth
// is cap(data).
//
// Fails with ErrInvalidArgument when data is nil with nonzero elems, or
// when len(data) < elems·channels.
func Wrap[T Scalar](data []T, elems, channels int) (*Buffer, error) {
	if err := checkExtents(tagOf[T](), elems, channels); err != nil {
		return nil, err
	}
	n := elems * channels
	if data == nil && n > 0 {
		return nil, fmt.Errorf("%w: nil data with %d scalars", ErrInvalidArgument, n)
	}
	if len(data) < n {
		return nil, fmt.Errorf("%w: wrapped slice holds %d scalars, need %d",
			ErrInvalidArgument, len(data), n)
	}

	return &Buffer{
		dt:       tagOf[T](),
		elems:    elems,
		channels: channels,
		owner:    External,
		st:       &typed[T]{t: tagOf[T](), data: data[:n]},
	}, nil
}

// WrapConst is Wrap with mutable access disabled: ViewMut, Fill, SetFloat
// and Resize fail with ErrReadOnly regardless of growth policy, until
// CreateInternalCopy promotes the buffer to Internal.
func WrapConst[T Scalar](data []T, elems, channels int) (*Buffer, error) {
	b, err := Wrap(data, elems, channels)
	if err != nil {
		return nil, err
	}
	b.readonly = true

	return b, nil
}

// View returns the backing slice of b without copying. The returned slice
// must be treated as read-only by callers; use ViewMut for checked mutable
// access.
//
// Complexity: O(1).
func View[T Scalar](b *Buffer) ([]T, error) {
	ts, ok := b.st.(*typed[T])
	if !ok {
		return nil, fmt.Errorf("%w: buffer holds %s", ErrTypeMismatch, b.dt)
	}

	return ts.data, nil
}

// ViewMut returns the backing slice of b for in-place mutation. Fails with
// ErrReadOnly on const external views.
//
// Complexity: O(1).
func ViewMut[T Scalar](b *Buffer) ([]T, error) {
	if b.readonly {
		return nil, ErrReadOnly
	}

	return View[T](b)
}

// Append appends len(vals)/channels elements to b, growing it under its
// growth policy. len(vals) must be a multiple of the channel count.
func Append[T Scalar](b *Buffer, vals []T) error {
	if tagOf[T]() != b.dt {
		return fmt.Errorf("%w: appending %s into %s", ErrTypeMismatch, tagOf[T](), b.dt)
	}
	if len(vals)%b.channels != 0 {
		return fmt.Errorf("%w: %d scalars is not a multiple of %d channels",
			ErrInvalidArgument, len(vals), b.channels)
	}
	oldScalars := b.elems * b.channels
	if err := b.Resize(b.elems+len(vals)/b.channels, 0); err != nil {
		return err
	}
	dst, err := View[T](b)
	if err != nil {
		return err
	}
	copy(dst[oldScalars:], vals)

	return nil
}
