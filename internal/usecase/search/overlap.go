package search

import (
	"github.com/specdex/specdex/internal/domain/search/filter"
	"github.com/specdex/specdex/internal/domain/spec"
)

// rangesOverlap reports whether a stored numeric projection intersects a
// filter interval (bounds inclusive).
func rangesOverlap(n spec.Numeric, r filter.Range) bool {
	return n.Max >= r.Min && n.Min <= r.Max
}

// overlapScore rates how much of the combined interval the intersection
// covers, in [0,1]. Callers must have confirmed an overlap first. A point
// value matching a point filter scores 1.
func overlapScore(n spec.Numeric, r filter.Range) float64 {
	lo := n.Min
	if r.Min > lo {
		lo = r.Min
	}
	hi := n.Max
	if r.Max < hi {
		hi = r.Max
	}
	overlap := hi - lo
	if overlap < 0 {
		overlap = 0
	}

	denom := n.Max - n.Min
	if d := r.Max - r.Min; d > denom {
		denom = d
	}
	if denom == 0 {
		return 1
	}
	return overlap / denom
}
