package compare

import (
	"sort"
	"strings"

	"github.com/specdex/specdex/internal/domain/spec"
)

// Item identifies one compared record in matrix column order.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Cell is one record's value for one specification key. Missing marks a
// record that has no present value under the key.
type Cell struct {
	RecordID string `json:"record_id"`
	Value    string `json:"value,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Missing  bool   `json:"missing,omitempty"`
}

// Row is one specification key across all held records. Different is set
// when at least two of the present values disagree.
type Row struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Different bool   `json:"different"`
	Cells     []Cell `json:"cells"`
}

// Matrix is the comparison grid over a set. An empty set yields an explicit
// empty marker instead of a zero-row grid so consumers can render the
// empty state without inspecting row counts.
type Matrix struct {
	Empty bool   `json:"empty"`
	Items []Item `json:"items,omitempty"`
	Rows  []Row  `json:"rows,omitempty"`
}

// Keys returns the union of full specification keys present in at least one
// held record, sorted lexicographically.
func (s *Set) Keys() []string {
	seen := make(map[string]struct{})
	for _, rec := range s.records {
		specs := rec.Specifications()
		for category, leaves := range specs {
			for specKey, v := range leaves {
				if v.Present() {
					seen[spec.FullKey(category, specKey)] = struct{}{}
				}
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsDifferent reports whether held records disagree on a key. Only records
// with a present value under the key participate; a key held by a single
// record is never different.
func (s *Set) IsDifferent(key string) bool {
	first := ""
	seen := false
	for _, rec := range s.records {
		v, ok := rec.Specifications().Lookup(key)
		if !ok || !v.Present() {
			continue
		}
		val := strings.TrimSpace(v.Value)
		if !seen {
			first, seen = val, true
			continue
		}
		if val != first {
			return true
		}
	}
	return false
}

// BuildMatrix derives the comparison grid from the current set contents.
func (s *Set) BuildMatrix() Matrix {
	if len(s.records) == 0 {
		return Matrix{Empty: true}
	}

	items := make([]Item, len(s.records))
	for i, rec := range s.records {
		items[i] = Item{ID: rec.ID(), Title: rec.Title()}
	}

	keys := s.Keys()
	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		row := Row{
			Key:       key,
			Different: s.IsDifferent(key),
			Cells:     make([]Cell, 0, len(s.records)),
		}
		for _, rec := range s.records {
			cell := Cell{RecordID: rec.ID()}
			v, ok := rec.Specifications().Lookup(key)
			if !ok || !v.Present() {
				cell.Missing = true
			} else {
				cell.Value = v.DisplayValue()
				cell.Unit = v.Unit
				if row.Label == "" {
					_, specKey, _ := spec.SplitKey(key)
					row.Label = v.Label(specKey)
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		if row.Label == "" {
			_, specKey, _ := spec.SplitKey(key)
			row.Label = specKey
		}
		rows = append(rows, row)
	}

	return Matrix{Items: items, Rows: rows}
}
