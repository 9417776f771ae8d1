package specdex

import (
	"github.com/specdex/specdex/internal/domain/catalog"
	domcmp "github.com/specdex/specdex/internal/domain/compare"
	"github.com/specdex/specdex/internal/domain/search/result"
	"github.com/specdex/specdex/internal/domain/spec"
)

// SpecValue is one specification leaf entry. A present value carries a
// scalar, a range string, or both bounds.
type SpecValue struct {
	Value       string `json:"value,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Tolerance   string `json:"tolerance,omitempty"`
	Range       string `json:"range,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
	Description string `json:"description,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Record is a catalog record: identity, title and specifications grouped
// by category.
type Record struct {
	ID             string
	Title          string
	Specifications map[string]map[string]SpecValue
}

// SearchResult is one scored search hit.
type SearchResult struct {
	Record      Record
	Score       float64
	MatchedKeys []string
	Highlights  map[string]string
}

// ComparisonItem identifies one record column in a comparison matrix.
type ComparisonItem struct {
	ID    string
	Title string
}

// ComparisonCell is one record's value for one specification row.
type ComparisonCell struct {
	RecordID string
	Value    string
	Unit     string
	Missing  bool
}

// ComparisonRow is one specification key across all compared records.
type ComparisonRow struct {
	Key       string
	Label     string
	Different bool
	Cells     []ComparisonCell
}

// ComparisonMatrix is the row-per-key view of a comparison set.
type ComparisonMatrix struct {
	Empty bool
	Items []ComparisonItem
	Rows  []ComparisonRow
}

func toInternalCategories(specs map[string]map[string]SpecValue) spec.Categories {
	if specs == nil {
		return nil
	}
	out := make(spec.Categories, len(specs))
	for cat, leaves := range specs {
		m := make(map[string]spec.Value, len(leaves))
		for key, v := range leaves {
			m[key] = spec.Value(v)
		}
		out[cat] = m
	}
	return out
}

func fromInternalRecord(rec catalog.Record) Record {
	specs := rec.Specifications()
	out := Record{ID: rec.ID(), Title: rec.Title()}
	if specs == nil {
		return out
	}
	out.Specifications = make(map[string]map[string]SpecValue, len(specs))
	for cat, leaves := range specs {
		m := make(map[string]SpecValue, len(leaves))
		for key, v := range leaves {
			m[key] = SpecValue(v)
		}
		out.Specifications[cat] = m
	}
	return out
}

func fromSearchResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{
			Record:      fromInternalRecord(r.Record()),
			Score:       r.Score(),
			MatchedKeys: r.MatchedKeys(),
			Highlights:  r.Highlights(),
		}
	}
	return out
}

func fromInternalMatrix(m domcmp.Matrix) ComparisonMatrix {
	out := ComparisonMatrix{Empty: m.Empty}
	if len(m.Items) > 0 {
		out.Items = make([]ComparisonItem, len(m.Items))
		for i, it := range m.Items {
			out.Items[i] = ComparisonItem{ID: it.ID, Title: it.Title}
		}
	}
	if len(m.Rows) > 0 {
		out.Rows = make([]ComparisonRow, len(m.Rows))
		for i, row := range m.Rows {
			cells := make([]ComparisonCell, len(row.Cells))
			for j, c := range row.Cells {
				cells[j] = ComparisonCell{
					RecordID: c.RecordID,
					Value:    c.Value,
					Unit:     c.Unit,
					Missing:  c.Missing,
				}
			}
			out.Rows[i] = ComparisonRow{
				Key:       row.Key,
				Label:     row.Label,
				Different: row.Different,
				Cells:     cells,
			}
		}
	}
	return out
}
