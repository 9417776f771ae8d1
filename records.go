package specdex

import (
	"context"
	"fmt"
	"io"

	compareuc "github.com/specdex/specdex/internal/usecase/compare"
	datasetuc "github.com/specdex/specdex/internal/usecase/dataset"
	recorduc "github.com/specdex/specdex/internal/usecase/record"
)

// RecordService manages catalog records.
type RecordService struct {
	svc *recorduc.Service
}

// Upsert creates or updates a record. A record without an ID gets a
// generated one. Returns the stored record and true if created.
func (s *RecordService) Upsert(ctx context.Context, rec Record) (Record, bool, error) {
	stored, created, err := s.svc.Upsert(ctx, rec.ID, rec.Title, toInternalCategories(rec.Specifications))
	if err != nil {
		return Record{}, false, fmt.Errorf("upsert: %w", err)
	}
	return fromInternalRecord(stored), created, nil
}

// Get retrieves a record by ID.
func (s *RecordService) Get(ctx context.Context, id string) (Record, error) {
	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return Record{}, fmt.Errorf("get: %w", err)
	}
	return fromInternalRecord(rec), nil
}

// List pages through records in ID order. An empty cursor starts from the
// beginning; an empty nextCursor marks the last page.
func (s *RecordService) List(ctx context.Context, cursor string, limit int) ([]Record, string, error) {
	recs, next, err := s.svc.List(ctx, cursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("list: %w", err)
	}
	out := make([]Record, len(recs))
	for i := range recs {
		out[i] = fromInternalRecord(recs[i])
	}
	return out, next, nil
}

// Delete removes a record by ID.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Count returns the number of catalog records.
func (s *RecordService) Count(ctx context.Context) (int, error) {
	return s.svc.Count(ctx)
}

// CompareService manages one comparison session.
type CompareService struct {
	session string
	svc     *compareuc.Service
}

// Add puts a record into the comparison set. Returns false without error
// when the set is full or the record is already present.
func (s *CompareService) Add(ctx context.Context, recordID string) (bool, error) {
	return s.svc.Add(ctx, s.session, recordID)
}

// Remove takes a record out of the comparison set. Returns false when the
// record was not in the set.
func (s *CompareService) Remove(ctx context.Context, recordID string) (bool, error) {
	return s.svc.Remove(ctx, s.session, recordID)
}

// Clear drops the whole comparison session.
func (s *CompareService) Clear(ctx context.Context) error {
	return s.svc.Clear(ctx, s.session)
}

// IDs returns the session's record IDs in insertion order.
func (s *CompareService) IDs(ctx context.Context) ([]string, error) {
	return s.svc.IDs(ctx, s.session)
}

// Matrix builds the side-by-side comparison matrix for the session.
func (s *CompareService) Matrix(ctx context.Context) (ComparisonMatrix, error) {
	m, err := s.svc.Matrix(ctx, s.session)
	if err != nil {
		return ComparisonMatrix{}, fmt.Errorf("matrix: %w", err)
	}
	return fromInternalMatrix(m), nil
}

// DatasetService imports and exports whole catalogs.
type DatasetService struct {
	svc *datasetuc.Service
}

// ImportReport summarizes one dataset import.
type ImportReport struct {
	Format   string
	Imported int
	Skipped  int
}

// Import loads a dataset from r; the filename extension selects the format
// (.json, .csv or .xlsx).
func (s *DatasetService) Import(ctx context.Context, r io.Reader, filename string) (ImportReport, error) {
	report, err := s.svc.Import(ctx, r, filename)
	if err != nil {
		return ImportReport{}, fmt.Errorf("import: %w", err)
	}
	return ImportReport{
		Format:   report.Format,
		Imported: report.Imported,
		Skipped:  report.Skipped,
	}, nil
}

// ExportJSON writes the whole catalog as a JSON array.
func (s *DatasetService) ExportJSON(ctx context.Context, w io.Writer) error {
	return s.svc.ExportJSON(ctx, w)
}

// ExportCSV writes the whole catalog as a flat CSV table.
func (s *DatasetService) ExportCSV(ctx context.Context, w io.Writer) error {
	return s.svc.ExportCSV(ctx, w)
}
