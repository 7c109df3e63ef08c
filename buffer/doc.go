// Package buffer provides the typed storage primitive behind mesh
// attributes: a contiguous, channelled array of one of ten fixed scalar
// types, with explicit ownership and an explicit growth policy.
//
// # Ownership
//
// A Buffer is either Internal (it allocated its storage and may reallocate
// freely) or External (it is a view over caller-supplied memory). An
// External buffer never frees or reallocates the caller's memory on its
// own; whether growth is rejected, performed in place within the caller's
// capacity, or answered by copying into fresh Internal storage is decided
// by the GrowthPolicy, consulted on every Resize. The External→Internal
// transition is one-way and observable through Ownership().
//
// # Scalar typing
//
// The scalar type is fixed at construction and carried as a ScalarType tag.
// Typed access goes through the generic View / ViewMut / Wrap / Append
// functions, which verify the tag and return the backing slice without
// copying. A lossy float64 path (GetFloat/SetFloat/Fill) exists for
// type-generic arithmetic such as averaging; lossless reordering uses
// Gather.
//
// # Errors
//
//	ErrInvalidArgument - nil data with nonzero count, overflowing extents,
//	                     or a negative size.
//	ErrTypeMismatch    - generic accessor instantiated with the wrong T.
//	ErrCapacity        - growth rejected by the active GrowthPolicy.
//	ErrReadOnly        - mutable access to a const external view.
//
// All errors are strict sentinels; check with errors.Is.
package buffer
