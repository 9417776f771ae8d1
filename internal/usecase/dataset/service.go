// Package dataset moves whole catalogs in and out of the store. JSON keeps
// the nested category structure intact; CSV and XLSX flatten leaves onto
// "category.spec" columns and are lossy for units and ranges.
package dataset

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/specdex/specdex/internal/domain"
	"github.com/specdex/specdex/internal/domain/catalog"
	"github.com/specdex/specdex/internal/domain/spec"
	"github.com/specdex/specdex/internal/fileio"
	"github.com/specdex/specdex/internal/metrics"
)

// Report summarizes one import run.
type Report struct {
	Format   string `json:"format"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Service handles bulk catalog import and export.
type Service struct {
	repo   Repository
	index  IndexInvalidator
	logger *zap.Logger
}

// New creates a dataset service. The invalidator may be nil.
func New(repo Repository, index IndexInvalidator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, index: index, logger: logger}
}

// recordDoc is the JSON dataset shape for one record.
type recordDoc struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
}

// Import loads a dataset file into the catalog. The format is chosen by
// file extension; rows without an ID get a generated ULID. Rows that fail
// validation are skipped, not fatal.
func (s *Service) Import(ctx context.Context, r io.Reader, filename string) (Report, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if format == "" {
		format = "unknown"
	}

	var (
		records []catalog.Record
		skipped int
		err     error
	)
	if format == "json" {
		records, skipped, err = decodeJSON(r)
	} else {
		records, skipped, err = s.decodeTable(r, filename)
	}
	if err != nil {
		metrics.DatasetImportsTotal.WithLabelValues(format, "error").Inc()
		return Report{}, err
	}

	for _, rec := range records {
		if _, err := s.repo.Upsert(ctx, rec); err != nil {
			metrics.DatasetImportsTotal.WithLabelValues(format, "error").Inc()
			return Report{}, fmt.Errorf("store record %s: %w", rec.ID(), err)
		}
	}

	if s.index != nil && len(records) > 0 {
		s.index.Invalidate()
	}

	metrics.DatasetImportsTotal.WithLabelValues(format, "ok").Inc()
	metrics.DatasetRecordsImported.Add(float64(len(records)))
	s.logger.Info("dataset imported",
		zap.String("format", format),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped))

	return Report{Format: format, Imported: len(records), Skipped: skipped}, nil
}

// decodeJSON parses the primary dataset format: an array of record
// documents with nested specifications. Malformed specification sections
// decode to "no specifications" rather than failing the import.
func decodeJSON(r io.Reader) ([]catalog.Record, int, error) {
	var docs []recordDoc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, 0, fmt.Errorf("%w: decode json: %w", domain.ErrDatasetFormat, err)
	}

	records := make([]catalog.Record, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		id := doc.ID
		if id == "" {
			id = newID()
		}
		rec, err := catalog.New(id, doc.Title, spec.DecodeCategories(doc.Specifications))
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// decodeTable parses CSV/XLSX rows: "id" and "title" columns plus one
// column per "category.spec" full key. Columns without a category prefix
// land under a "general" category.
func (s *Service) decodeTable(r io.Reader, filename string) ([]catalog.Record, int, error) {
	rows, err := fileio.ReadTable(r, filename, 1)
	if err != nil {
		return nil, 0, fmt.Errorf("parse dataset: %w", err)
	}

	records := make([]catalog.Record, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		id := strings.TrimSpace(row["id"])
		if id == "" {
			id = newID()
		}

		specs := spec.Categories{}
		for column, cell := range row {
			if column == "id" || column == "title" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			category, specKey, ok := spec.SplitKey(column)
			if !ok {
				category, specKey = "general", column
			}
			if specs[category] == nil {
				specs[category] = make(map[string]spec.Value)
			}
			specs[category][specKey] = spec.Value{Value: cell}
		}

		rec, err := catalog.New(id, strings.TrimSpace(row["title"]), specs)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// ExportJSON writes the whole catalog in the nested dataset format.
func (s *Service) ExportJSON(ctx context.Context, w io.Writer) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		metrics.DatasetExportsTotal.WithLabelValues("json", "error").Inc()
		return fmt.Errorf("list records: %w", err)
	}
	metrics.DatasetExportsTotal.WithLabelValues("json", "ok").Inc()

	docs := make([]recordDoc, 0, len(records))
	for i := range records {
		rec := &records[i]
		raw, err := json.Marshal(rec.Specifications())
		if err != nil {
			return fmt.Errorf("encode specifications for %s: %w", rec.ID(), err)
		}
		docs = append(docs, recordDoc{ID: rec.ID(), Title: rec.Title(), Specifications: raw})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// ExportCSV writes a flat view of the catalog: id, title, then the union
// of full specification keys as columns in lexicographic order. Units,
// ranges and descriptions collapse into display values.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		metrics.DatasetExportsTotal.WithLabelValues("csv", "error").Inc()
		return fmt.Errorf("list records: %w", err)
	}
	metrics.DatasetExportsTotal.WithLabelValues("csv", "ok").Inc()

	keySet := make(map[string]struct{})
	for i := range records {
		specs := records[i].Specifications()
		for category, leaves := range specs {
			for specKey := range leaves {
				keySet[spec.FullKey(category, specKey)] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := append([]string{"id", "title"}, keys...)
	rows := make([]map[string]string, 0, len(records))
	for i := range records {
		rec := &records[i]
		row := map[string]string{"id": rec.ID(), "title": rec.Title()}
		for _, key := range keys {
			if v, ok := rec.Specifications().Lookup(key); ok && v.Present() {
				display := v.DisplayValue()
				if v.Unit != "" {
					display += " " + v.Unit
				}
				row[key] = display
			}
		}
		rows = append(rows, row)
	}

	if err := fileio.WriteCSV(w, headers, rows); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

func newID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
