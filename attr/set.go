// File: set.go
// Role: Set — the name/id registry owning attributes — plus Handle, the
//       revalidating accessor.
// Determinism:
//   - IDs are monotonic and never recycled within a Set's lifetime.
//   - IDs() and Match() enumerate in creation order.

package attr

import (
	"fmt"

	"github.com/halveth/surfmesh/buffer"
)

// Set owns the mapping from attribute name/id to Attribute. The zero value
// is not usable; construct with NewSet.
type Set struct {
	byID   map[ID]*Attribute
	byName map[string]ID
	order  []ID // live ids in creation order
	nextID ID
}

// NewSet returns an empty attribute set.
func NewSet() *Set {
	return &Set{
		byID:   make(map[ID]*Attribute),
		byName: make(map[string]ID),
	}
}

// Option configures attribute creation.
type Option func(*createConfig)

type createConfig struct {
	defaultValue  float64
	growth        buffer.GrowthPolicy
	forceReserved bool
	values        *buffer.Buffer
	indices       *buffer.Buffer
}

// WithDefaultValue sets the scalar used to fill new elements on growth.
func WithDefaultValue(v float64) Option {
	return func(c *createConfig) { c.defaultValue = v }
}

// WithGrowthPolicy sets the growth policy on the attribute's buffers.
func WithGrowthPolicy(p buffer.GrowthPolicy) Option {
	return func(c *createConfig) { c.growth = p }
}

// WithForceReserved permits creation of a '$'-prefixed attribute name.
func WithForceReserved() Option {
	return func(c *createConfig) { c.forceReserved = true }
}

// WithValues adopts the given buffer as the attribute's value storage
// instead of allocating an empty one. Use with buffer.Wrap / WrapConst to
// build an attribute over caller-owned memory.
func WithValues(b *buffer.Buffer) Option {
	return func(c *createConfig) { c.values = b }
}

// WithIndices adopts the given single-channel Uint32 buffer as the index
// storage of an Indexed attribute. The index type is fixed so every
// consumer can address the value pool through one view type.
func WithIndices(b *buffer.Buffer) Option {
	return func(c *createConfig) { c.indices = b }
}

// Create registers a new attribute under name and returns it.
//
// Contract:
//   - name must be unused (ErrAttributeExists) and unreserved unless
//     WithForceReserved is given (ErrReservedName).
//   - channels must satisfy the usage tag; index usages require an
//     integer dtype (ErrInvalidArgument).
//   - element == Indexed allocates (or adopts, via WithIndices) a
//     per-corner index buffer alongside the value pool.
//
// Complexity: O(1) plus any adopted-buffer validation.
func (s *Set) Create(
	name string,
	element Element,
	usage Usage,
	channels int,
	dtype buffer.ScalarType,
	opts ...Option,
) (*Attribute, error) {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty attribute name", ErrInvalidArgument)
	}
	if IsReservedName(name) && !cfg.forceReserved {
		return nil, fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	if _, exists := s.byName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrAttributeExists, name)
	}
	if element >= numElements || usage >= numUsages {
		return nil, fmt.Errorf("%w: element=%d usage=%d", ErrInvalidArgument, element, usage)
	}
	if !usage.checkChannels(channels) {
		return nil, fmt.Errorf("%w: usage %s cannot have %d channels",
			ErrInvalidArgument, usage, channels)
	}
	if usage.IsIndex() && !dtype.IsInteger() {
		return nil, fmt.Errorf("%w: usage %s requires an integer dtype, got %s",
			ErrInvalidArgument, usage, dtype)
	}

	values := cfg.values
	if values == nil {
		var err error
		values, err = buffer.New(dtype, 0, channels)
		if err != nil {
			return nil, err
		}
	} else if values.Type() != dtype || values.Channels() != channels {
		return nil, fmt.Errorf("%w: adopted buffer is %s×%d, attribute is %s×%d",
			ErrInvalidArgument, values.Type(), values.Channels(), dtype, channels)
	}
	values.SetGrowthPolicy(cfg.growth)

	var indices *buffer.Buffer
	switch {
	case element == Indexed && cfg.indices != nil:
		indices = cfg.indices
		if indices.Type() != buffer.Uint32 || indices.Channels() != 1 {
			return nil, fmt.Errorf("%w: index buffer must be a 1-channel %s buffer",
				ErrInvalidArgument, buffer.Uint32)
		}
		indices.SetGrowthPolicy(cfg.growth)
	case element == Indexed:
		var err error
		indices, err = buffer.New(buffer.Uint32, 0, 1)
		if err != nil {
			return nil, err
		}
	case cfg.indices != nil:
		return nil, fmt.Errorf("%w: index buffer on %s attribute", ErrInvalidArgument, element)
	}

	a := &Attribute{
		id:           s.nextID,
		name:         name,
		element:      element,
		usage:        usage,
		channels:     channels,
		dtype:        dtype,
		defaultValue: cfg.defaultValue,
		values:       values,
		indices:      indices,
	}
	s.nextID++
	s.byID[a.id] = a
	s.byName[name] = a.id
	s.order = append(s.order, a.id)

	return a, nil
}

// Get returns the attribute registered under name.
func (s *Set) Get(name string) (*Attribute, error) {
	id, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
	}

	return s.byID[id], nil
}

// GetByID returns the attribute with the given id. IDs of deleted
// attributes miss forever; they are never reassigned.
func (s *Set) GetByID(id ID) (*Attribute, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrAttributeNotFound, id)
	}

	return a, nil
}

// Has reports whether an attribute is registered under name.
func (s *Set) Has(name string) bool {
	_, ok := s.byName[name]

	return ok
}

// IDOf returns the id registered under name, or InvalidID.
func (s *Set) IDOf(name string) ID {
	id, ok := s.byName[name]
	if !ok {
		return InvalidID
	}

	return id
}

// Len returns the number of live attributes.
func (s *Set) Len() int { return len(s.byID) }

// Delete removes the attribute registered under name. Reserved attributes
// are structural slots and are protected: deleting one is ErrReservedName
// unless done through ForceDelete. Outstanding handles to the deleted
// attribute fail loudly with ErrAttributeNotFound from then on.
func (s *Set) Delete(name string) error {
	a, err := s.Get(name)
	if err != nil {
		return err
	}
	if a.IsReserved() {
		return fmt.Errorf("%w: %q is structural; use ForceDelete", ErrReservedName, name)
	}
	s.drop(a)

	return nil
}

// ForceDelete removes the attribute registered under name even when it is
// a reserved structural slot. Intended for the mesh's own rebuilds.
func (s *Set) ForceDelete(name string) error {
	a, err := s.Get(name)
	if err != nil {
		return err
	}
	s.drop(a)

	return nil
}

func (s *Set) drop(a *Attribute) {
	delete(s.byID, a.id)
	delete(s.byName, a.name)
	for i, id := range s.order {
		if id == a.id {
			s.order = append(s.order[:i], s.order[i+1:]...)

			break
		}
	}
}

// Rename changes an attribute's name, keeping its id. Reserved attributes
// are structural slots on both ends: renaming one away would strip its
// protection, so the source must be unreserved too. The new name must be
// unused and unreserved.
func (s *Set) Rename(oldName, newName string) error {
	a, err := s.Get(oldName)
	if err != nil {
		return err
	}
	if a.IsReserved() {
		return fmt.Errorf("%w: %q is structural", ErrReservedName, oldName)
	}
	if newName == "" {
		return fmt.Errorf("%w: empty attribute name", ErrInvalidArgument)
	}
	if IsReservedName(newName) {
		return fmt.Errorf("%w: %q", ErrReservedName, newName)
	}
	if _, exists := s.byName[newName]; exists {
		return fmt.Errorf("%w: %q", ErrAttributeExists, newName)
	}
	delete(s.byName, oldName)
	a.name = newName
	s.byName[newName] = a.id

	return nil
}

// IDs returns every live attribute id in creation order.
func (s *Set) IDs() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)

	return out
}

// MatchOptions filters attribute listing. Each filter slice enumerates the
// accepted tags; a nil slice leaves that axis unconstrained. Listing with
// no filters at all matches nothing, not everything (use IDs for an
// unfiltered listing). IncludeReserved opts '$'-prefixed attributes into
// the result.
type MatchOptions struct {
	Elements        []Element
	Usages          []Usage
	IncludeReserved bool
}

// Match returns the ids of attributes accepted by every given filter, in
// creation order.
//
// Complexity: O(attributes · filter sizes).
func (s *Set) Match(opts MatchOptions) []ID {
	if len(opts.Elements) == 0 && len(opts.Usages) == 0 {
		return nil
	}
	var out []ID
	for _, id := range s.order {
		a := s.byID[id]
		if a.IsReserved() && !opts.IncludeReserved {
			continue
		}
		if len(opts.Elements) > 0 && !containsElement(opts.Elements, a.element) {
			continue
		}
		if len(opts.Usages) > 0 && !containsUsage(opts.Usages, a.usage) {
			continue
		}
		out = append(out, id)
	}

	return out
}

func containsElement(list []Element, e Element) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}

	return false
}

func containsUsage(list []Usage, u Usage) bool {
	for _, x := range list {
		if x == u {
			return true
		}
	}

	return false
}

// Clone duplicates the set. deep=true copies every buffer into internal
// storage; deep=false shares buffers (mutations visible through both sets)
// while keeping independent registry membership. The id sequence carries
// over so clones keep the never-recycle guarantee.
func (s *Set) Clone(deep bool) *Set {
	out := &Set{
		byID:   make(map[ID]*Attribute, len(s.byID)),
		byName: make(map[string]ID, len(s.byName)),
		order:  make([]ID, len(s.order)),
		nextID: s.nextID,
	}
	copy(out.order, s.order)
	for id, a := range s.byID {
		c := a.clone(deep)
		out.byID[id] = c
		out.byName[c.name] = id
	}

	return out
}

// Handle is a revalidating reference to one attribute of one Set. A Handle
// stays cheap to copy and never dangles: after the attribute is deleted,
// every access reports ErrAttributeNotFound.
type Handle struct {
	set *Set
	id  ID
}

// Handle returns a revalidating handle for id. The id need not be live.
func (s *Set) Handle(id ID) Handle {
	return Handle{set: s, id: id}
}

// ID returns the id the handle was created with.
func (h Handle) ID() ID { return h.id }

// Get resolves the handle, failing with ErrAttributeNotFound once the
// attribute has been deleted.
func (h Handle) Get() (*Attribute, error) {
	if h.set == nil {
		return nil, fmt.Errorf("%w: zero handle", ErrAttributeNotFound)
	}

	return h.set.GetByID(h.id)
}
