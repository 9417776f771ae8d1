// Package catalog holds the raw catalog item aggregate consumed by the
// search and comparison engines.
package catalog

import (
	"fmt"

	"github.com/specdex/specdex/internal/domain/spec"
)

// MaxIDLength bounds record identifiers.
const MaxIDLength = 256

// Record is a raw catalog item (immutable value object). The engines never
// mutate a Record; derived state lives in their own projections.
type Record struct {
	id             string
	title          string
	specifications spec.Categories
}

// New validates and creates a Record. Specifications may be nil, which is
// treated as "no specifications" rather than an error.
func New(id, title string, specifications spec.Categories) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	if len(id) > MaxIDLength {
		return Record{}, fmt.Errorf("record ID too long (max %d)", MaxIDLength)
	}
	if specifications == nil {
		specifications = spec.Categories{}
	}
	return Record{id: id, title: title, specifications: specifications}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(id, title string, specifications spec.Categories) Record {
	if specifications == nil {
		specifications = spec.Categories{}
	}
	return Record{id: id, title: title, specifications: specifications}
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// Title returns the record title.
func (r Record) Title() string { return r.title }

// Specifications returns the nested specification categories.
func (r Record) Specifications() spec.Categories { return r.specifications }
