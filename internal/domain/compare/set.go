// Package compare holds the bounded, ordered, deduplicated set of records
// selected for side-by-side comparison.
package compare

import "github.com/specdex/specdex/internal/domain/catalog"

// DefaultCapacity is the maximum number of records held for comparison.
const DefaultCapacity = 4

// Set is an ordered comparison selection. Invariants: length never exceeds
// the capacity and no two entries share an ID. The zero value is unusable;
// construct via NewSet.
type Set struct {
	capacity int
	records  []catalog.Record
}

// NewSet creates an empty set with the default capacity.
func NewSet() *Set {
	return NewSetWithCapacity(DefaultCapacity)
}

// NewSetWithCapacity creates an empty set with an explicit capacity.
// Non-positive capacities fall back to the default.
func NewSetWithCapacity(capacity int) *Set {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Set{capacity: capacity}
}

// Add appends a record. It returns false — with no mutation — when the
// record has no ID, the set is at capacity, or a record with the same ID is
// already held.
func (s *Set) Add(rec catalog.Record) bool {
	if rec.ID() == "" {
		return false
	}
	if len(s.records) >= s.capacity {
		return false
	}
	if s.Contains(rec.ID()) {
		return false
	}
	s.records = append(s.records, rec)
	return true
}

// Remove drops the record with the given ID, reporting whether a removal
// occurred. Order of the remaining records is preserved.
func (s *Set) Remove(id string) bool {
	for i, rec := range s.records {
		if rec.ID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops all held records.
func (s *Set) Clear() {
	s.records = nil
}

// Contains reports whether a record with the given ID is held.
func (s *Set) Contains(id string) bool {
	for _, rec := range s.records {
		if rec.ID() == id {
			return true
		}
	}
	return false
}

// Len returns the number of held records.
func (s *Set) Len() int { return len(s.records) }

// Capacity returns the maximum number of held records.
func (s *Set) Capacity() int { return s.capacity }

// Records returns the held records in insertion order.
func (s *Set) Records() []catalog.Record { return s.records }

// IDs returns the held record IDs in insertion order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.records))
	for i, rec := range s.records {
		ids[i] = rec.ID()
	}
	return ids
}
