package chi

import (
	"encoding/json"
	"math"

	"github.com/specdex/specdex/internal/domain/catalog"
	domcmp "github.com/specdex/specdex/internal/domain/compare"
	"github.com/specdex/specdex/internal/domain/search/filter"
	"github.com/specdex/specdex/internal/domain/search/result"
	"github.com/specdex/specdex/internal/domain/spec"
	searchuc "github.com/specdex/specdex/internal/usecase/search"
)

// errorCode is the machine-readable error discriminator in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeUnauthorized     errorCode = "unauthorized"
	codeValidationFailed errorCode = "validation_failed"
	codeRecordNotFound   errorCode = "record_not_found"
	codeSessionNotFound  errorCode = "session_not_found"
	codeDatasetFormat    errorCode = "unsupported_dataset_format"
	codeNotImplemented   errorCode = "not_implemented"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// recordPayload is the wire shape for record create/update requests.
type recordPayload struct {
	ID             string          `json:"id,omitempty"`
	Title          string          `json:"title"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
}

// recordResponse is the wire shape for a stored record.
type recordResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Specifications spec.Categories `json:"specifications"`
}

func recordToResponse(rec catalog.Record) recordResponse {
	return recordResponse{
		ID:             rec.ID(),
		Title:          rec.Title(),
		Specifications: rec.Specifications(),
	}
}

type recordListResponse struct {
	Items      []recordResponse `json:"items"`
	HasMore    bool             `json:"has_more"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// rangeBound keeps null bounds distinguishable from zero; a null bound is
// a defined filter rejection, not a zero.
type rangeBound struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// searchRequest is the wire shape for POST /search.
type searchRequest struct {
	Text       string                `json:"text,omitempty"`
	Ranges     map[string]rangeBound `json:"ranges,omitempty"`
	Categories []string              `json:"categories,omitempty"`
}

func (r searchRequest) toParams() searchuc.Params {
	p := searchuc.Params{Text: r.Text, Categories: r.Categories}
	if len(r.Ranges) > 0 {
		p.Ranges = make(map[string]filter.Range, len(r.Ranges))
		for key, b := range r.Ranges {
			p.Ranges[key] = filter.Range{Min: deref(b.Min), Max: deref(b.Max)}
		}
	}
	return p
}

// deref maps a null bound to NaN, which the filter layer rejects.
func deref(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

type searchResultItem struct {
	Record      recordResponse    `json:"record"`
	Score       float64           `json:"score"`
	MatchedKeys []string          `json:"matched_keys,omitempty"`
	Highlighted map[string]string `json:"highlighted,omitempty"`
}

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

func searchResultsToResponse(results []result.Result) searchResponse {
	items := make([]searchResultItem, len(results))
	for i := range results {
		r := &results[i]
		items[i] = searchResultItem{
			Record:      recordToResponse(r.Record()),
			Score:       r.Score(),
			MatchedKeys: r.MatchedKeys(),
			Highlighted: r.Highlights(),
		}
	}
	return searchResponse{Items: items, Total: len(items)}
}

// compareAddRequest is the wire shape for adding a record to a session.
type compareAddRequest struct {
	RecordID string `json:"record_id"`
}

// compareMutationResponse reports the outcome of an add or remove. A
// rejected add (capacity, duplicate) is a defined outcome, not an error.
type compareMutationResponse struct {
	Applied bool     `json:"applied"`
	IDs     []string `json:"ids"`
}

type compareSessionResponse struct {
	IDs    []string      `json:"ids"`
	Matrix domcmp.Matrix `json:"matrix"`
}

type compareSessionCreatedResponse struct {
	SessionID string `json:"session_id"`
}
