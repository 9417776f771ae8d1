package search

import (
	"strings"

	"github.com/specdex/specdex/internal/domain/catalog"
	"github.com/specdex/specdex/internal/domain/spec"
)

// NormalizedRecord is the engine-owned, search-ready projection of a raw
// catalog record: a lowercase text blob over title and specification fields
// plus a per-key numeric projection. Instances are immutable after
// normalization and may be shared across engine instances.
type NormalizedRecord struct {
	Record         catalog.Record
	SearchableText string
	Numerics       map[string]spec.Numeric
}

// normalizeRecords builds the searchable projection for every record, in
// input order. Records with missing or malformed specifications contribute
// an empty text blob and no numeric entries but are still indexed.
func normalizeRecords(records []catalog.Record) []NormalizedRecord {
	out := make([]NormalizedRecord, len(records))
	for i, rec := range records {
		out[i] = normalizeRecord(rec)
	}
	return out
}

func normalizeRecord(rec catalog.Record) NormalizedRecord {
	specs := rec.Specifications()
	parts := []string{rec.Title()}
	numerics := make(map[string]spec.Numeric)

	// Lexicographic key order keeps the blob and the numeric map
	// deterministic regardless of source ordering.
	for _, category := range specs.SortedKeys() {
		for _, specKey := range specs.SortedSpecKeys(category) {
			v := specs[category][specKey]
			if v.DisplayName != "" {
				parts = append(parts, v.DisplayName)
			}
			parts = append(parts, specKey)
			if strings.TrimSpace(v.Value) != "" {
				parts = append(parts, v.Value)
			}
			if v.Description != "" {
				parts = append(parts, v.Description)
			}
			if n, ok := spec.ParseNumeric(v); ok {
				numerics[spec.FullKey(category, specKey)] = n
			}
		}
	}

	return NormalizedRecord{
		Record:         rec,
		SearchableText: strings.ToLower(strings.Join(parts, " ")),
		Numerics:       numerics,
	}
}
