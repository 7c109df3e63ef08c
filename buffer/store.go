// File: store.go
// Role: closed tagged-variant storage behind Buffer. One generic
//       implementation (typed[T]) instantiated per scalar tag stands in for
//       runtime reflection; every type-dependent operation dispatches
//       through the store interface.

package buffer

// store is the type-erased storage surface. Lengths and offsets are in
// scalars, not elements; Buffer applies the channel factor.
type store interface {
	tag() ScalarType
	length() int
	capScalars() int

	// shrink reslices to n scalars in place, n <= length. The backing
	// array (and any external view) is untouched.
	shrink(n int)
	// growWithin extends to n scalars within the existing capacity,
	// filling the new scalars with fill. Reports false when capacity is
	// insufficient; the store is unchanged in that case.
	growWithin(n int, fill float64) bool
	// growCopy returns fresh internal storage of n scalars holding a copy
	// of the current contents, with any new scalars set to fill.
	growCopy(n int, fill float64) store

	clone() store
	fill(v float64)
	getFloat(i int) float64
	setFloat(i int, v float64)

	// gather returns fresh internal storage with element newE holding the
	// channels scalars of element idx[newE].
	gather(idx []int, channels int) store
	// copyFrom copies n scalars from src starting at srcOff into this
	// store at dstOff. Reports false on a scalar-type mismatch.
	copyFrom(dstOff int, src store, srcOff, n int) bool
}

// typed is the single generic store implementation.
type typed[T Scalar] struct {
	t    ScalarType
	data []T
}

func newTyped[T Scalar](t ScalarType, n int) *typed[T] {
	return &typed[T]{t: t, data: make([]T, n)}
}

func (s *typed[T]) tag() ScalarType { return s.t }
func (s *typed[T]) length() int     { return len(s.data) }
func (s *typed[T]) capScalars() int { return cap(s.data) }

func (s *typed[T]) shrink(n int) { s.data = s.data[:n] }

func (s *typed[T]) growWithin(n int, fill float64) bool {
	if cap(s.data) < n {
		return false
	}
	old := len(s.data)
	s.data = s.data[:n]
	f := T(fill)
	for i := old; i < n; i++ {
		s.data[i] = f
	}

	return true
}

func (s *typed[T]) growCopy(n int, fill float64) store {
	out := make([]T, n)
	copy(out, s.data)
	f := T(fill)
	for i := len(s.data); i < n; i++ {
		out[i] = f
	}

	return &typed[T]{t: s.t, data: out}
}

func (s *typed[T]) clone() store {
	out := make([]T, len(s.data))
	copy(out, s.data)

	return &typed[T]{t: s.t, data: out}
}

func (s *typed[T]) fill(v float64) {
	f := T(v)
	for i := range s.data {
		s.data[i] = f
	}
}

func (s *typed[T]) getFloat(i int) float64  { return float64(s.data[i]) }
func (s *typed[T]) setFloat(i int, v float64) { s.data[i] = T(v) }

func (s *typed[T]) gather(idx []int, channels int) store {
	out := make([]T, len(idx)*channels)
	for newE, oldE := range idx {
		copy(out[newE*channels:(newE+1)*channels], s.data[oldE*channels:(oldE+1)*channels])
	}

	return &typed[T]{t: s.t, data: out}
}

func (s *typed[T]) copyFrom(dstOff int, src store, srcOff, n int) bool {
	ts, ok := src.(*typed[T])
	if !ok {
		return false
	}
	copy(s.data[dstOff:dstOff+n], ts.data[srcOff:srcOff+n])

	return true
}

// newStore allocates zeroed internal storage of n scalars for tag t.
func newStore(t ScalarType, n int) store {
	switch t {
	case Int8:
		return newTyped[int8](t, n)
	case Int16:
		return newTyped[int16](t, n)
	case Int32:
		return newTyped[int32](t, n)
	case Int64:
		return newTyped[int64](t, n)
	case Uint8:
		return newTyped[uint8](t, n)
	case Uint16:
		return newTyped[uint16](t, n)
	case Uint32:
		return newTyped[uint32](t, n)
	case Uint64:
		return newTyped[uint64](t, n)
	case Float32:
		return newTyped[float32](t, n)
	default:
		return newTyped[float64](Float64, n)
	}
}

// tagOf maps a concrete scalar type parameter to its ScalarType tag.
func tagOf[T Scalar]() ScalarType {
	var z T
	switch any(z).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	default:
		return Float64
	}
}
