package catalog

import (
	"encoding/json"
	"fmt"

	domcat "github.com/specdex/specdex/internal/domain/catalog"
	"github.com/specdex/specdex/internal/domain/spec"
)

// recordDoc is the JSON document stored per record.
type recordDoc struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
}

// recordToJSON serializes a domain Record for JSON.SET.
func recordToJSON(rec domcat.Record) ([]byte, error) {
	specs, err := json.Marshal(rec.Specifications())
	if err != nil {
		return nil, fmt.Errorf("marshal specifications: %w", err)
	}
	data, err := json.Marshal(recordDoc{ID: rec.ID(), Title: rec.Title(), Specifications: specs})
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

// recordFromJSON hydrates a domain Record from a stored document. Malformed
// specification sections hydrate as "no specifications" so one bad document
// cannot poison a listing.
func recordFromJSON(data []byte) (domcat.Record, error) {
	var doc recordDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domcat.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return domcat.Reconstruct(doc.ID, doc.Title, spec.DecodeCategories(doc.Specifications)), nil
}
