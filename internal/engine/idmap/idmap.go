// Package idmap mints destination identifiers for source objects.
package idmap

import (
	"maps"
	"slices"

	"go.trai.ch/portable/internal/core/domain"
)

// Map is a build-scoped, bidirectional mapping from source refs to destination identifiers.
// Every kind draws from one sequence, so a destination identifier is unique across the case.
// Map is not safe for concurrent use.
type Map struct {
	next    domain.DestinationObjectID
	forward map[domain.SourceObjectRef]domain.DestinationObjectID
	reverse map[domain.DestinationObjectID]domain.SourceObjectRef
}

// New creates an empty Map whose first identifier is 1.
func New() *Map {
	return &Map{
		next:    1,
		forward: make(map[domain.SourceObjectRef]domain.DestinationObjectID),
		reverse: make(map[domain.DestinationObjectID]domain.SourceObjectRef),
	}
}

// Remap returns the destination identifier for ref, allocating one on first use.
// Repeated calls with the same ref return the same identifier.
func (m *Map) Remap(ref domain.SourceObjectRef) domain.DestinationObjectID {
	if id, ok := m.forward[ref]; ok {
		return id
	}
	id := m.next
	m.next++
	m.forward[ref] = id
	m.reverse[id] = ref
	return id
}

// Lookup returns the destination identifier for ref without allocating.
func (m *Map) Lookup(ref domain.SourceObjectRef) (domain.DestinationObjectID, bool) {
	id, ok := m.forward[ref]
	return id, ok
}

// Source returns the ref a destination identifier was minted for.
func (m *Map) Source(id domain.DestinationObjectID) (domain.SourceObjectRef, bool) {
	ref, ok := m.reverse[id]
	return ref, ok
}

// Forget removes the mapping for an object that was not written.
// The identifier is not reused.
func (m *Map) Forget(ref domain.SourceObjectRef) {
	if id, ok := m.forward[ref]; ok {
		delete(m.forward, ref)
		delete(m.reverse, id)
	}
}

// Len returns the number of mapped refs.
func (m *Map) Len() int {
	return len(m.forward)
}

// Refs returns every mapped ref in canonical order.
func (m *Map) Refs() []domain.SourceObjectRef {
	return slices.SortedFunc(maps.Keys(m.forward), domain.CompareRefs)
}
