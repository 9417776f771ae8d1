package compare

import "github.com/specdex/specdex/internal/domain/catalog"

// Serialize returns the held record IDs in insertion order, suitable for a
// session store or a share link.
func Serialize(s *Set) []string {
	if s == nil {
		return nil
	}
	return s.IDs()
}

// Restore rebuilds a set from a serialized ID list through the ordinary Add
// contract. IDs the lookup cannot resolve are skipped, as are duplicates and
// IDs beyond capacity; re-adding the same IDs in the same order reproduces
// an equivalent set.
func Restore(ids []string, lookup func(id string) (catalog.Record, bool)) *Set {
	s := NewSet()
	for _, id := range ids {
		rec, ok := lookup(id)
		if !ok {
			continue
		}
		s.Add(rec)
	}
	return s
}
