// Package attr defines named, typed mesh attributes and the Set that owns
// them.
//
// An Attribute couples metadata (element kind, usage tag, channel count,
// scalar type, default value) with one buffer of values, or, for Indexed
// attributes, a value pool plus a per-corner index buffer, the
// split-vertex encoding used for UVs and normals whose value count is
// independent of (and usually smaller than) the corner count.
//
// A Set maps names to attributes and hands out stable integer IDs:
//
//   - IDs are assigned monotonically and are never recycled within a
//     Set's lifetime, so a stale ID can only miss, never alias a younger
//     attribute.
//   - Names are unique while assigned; names starting with '$' are
//     reserved for structural/derived attributes and require an explicit
//     force option to create or delete.
//   - Handle wraps (set, id) and revalidates on every access: reading
//     through a handle after deletion is ErrAttributeNotFound, never
//     stale data.
//
// Filtered listing via Match returns IDs in creation order; an empty
// filter slice matches nothing, so listing everything means naming every
// element kind (or calling IDs).
//
// Errors:
//
//	ErrAttributeNotFound - lookup miss, or access through a deleted handle.
//	ErrAttributeExists   - duplicate name on create or rename.
//	ErrReservedName      - '$'-prefixed name without the force option.
//	ErrNotIndexed        - index-buffer access on a non-indexed attribute.
//	ErrInvalidArgument   - channel/usage mismatch, bad dtype, nil buffer.
package attr
