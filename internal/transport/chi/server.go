// Package chi exposes the catalog, search, comparison and dataset services
// over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/specdex/specdex/internal/domain"
	"github.com/specdex/specdex/internal/domain/spec"
	logpkg "github.com/specdex/specdex/internal/logger"
	compareuc "github.com/specdex/specdex/internal/usecase/compare"
	datasetuc "github.com/specdex/specdex/internal/usecase/dataset"
	healthuc "github.com/specdex/specdex/internal/usecase/health"
	recorduc "github.com/specdex/specdex/internal/usecase/record"
	searchuc "github.com/specdex/specdex/internal/usecase/search"
	"github.com/specdex/specdex/internal/version"
)

// maxImportSize bounds dataset uploads (64 MiB).
const maxImportSize = 64 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	records       *recorduc.Service
	search        *searchuc.Service
	compare       *compareuc.Service
	datasets      *datasetuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	records *recorduc.Service,
	search *searchuc.Service,
	compare *compareuc.Service,
	datasets *datasetuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		records:  records,
		search:   search,
		compare:  compare,
		datasets: datasets,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, codeRecordNotFound),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, codeSessionNotFound),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDatasetFormat, http.StatusBadRequest, codeDatasetFormat),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, codeNotImplemented),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/version", s.Version)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.ListRecords)
			r.Post("/", s.CreateRecord)
			r.Get("/{id}", s.GetRecord)
			r.Put("/{id}", s.UpsertRecord)
			r.Delete("/{id}", s.DeleteRecord)
		})

		r.Post("/search", s.Search)

		r.Post("/compare", s.CreateComparisonSession)
		r.Route("/compare/{session}", func(r chi.Router) {
			r.Get("/", s.GetComparison)
			r.Delete("/", s.ClearComparison)
			r.Post("/items", s.AddComparisonItem)
			r.Delete("/items/{id}", s.RemoveComparisonItem)
		})

		r.Route("/datasets", func(r chi.Router) {
			r.Post("/import", s.ImportDataset)
			r.Get("/export", s.ExportDataset)
		})
	})
}

// ListRecords handles GET /api/v1/records.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	recs, nextCursor, err := s.records.List(r.Context(), cursor, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]recordResponse, len(recs))
	for i := range recs {
		items[i] = recordToResponse(recs[i])
	}
	writeJSON(w, http.StatusOK, recordListResponse{
		Items:      items,
		HasMore:    nextCursor != "",
		NextCursor: nextCursor,
	})
}

// CreateRecord handles POST /api/v1/records. Records without an ID get a
// generated one.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	s.upsertRecord(w, r, "")
}

// UpsertRecord handles PUT /api/v1/records/{id}.
func (s *Server) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	s.upsertRecord(w, r, chi.URLParam(r, "id"))
}

func (s *Server) upsertRecord(w http.ResponseWriter, r *http.Request, id string) {
	var req recordPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if id == "" {
		id = req.ID
	}

	rec, created, err := s.records.Upsert(r.Context(), id, req.Title, spec.DecodeCategories(req.Specifications))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/api/v1/records/"+rec.ID())
	}
	writeJSON(w, status, recordToResponse(rec))
}

// GetRecord handles GET /api/v1/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(rec))
}

// DeleteRecord handles DELETE /api/v1/records/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.records.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles POST /api/v1/search. An empty filter set is the browse
// state and returns every record; "no results" is an empty item list with
// the same response shape.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), req.toParams())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResultsToResponse(results))
}

// CreateComparisonSession handles POST /api/v1/compare. Session ids are
// normally caller-chosen; this endpoint mints one for clients that do not
// want to pick their own.
func (s *Server) CreateComparisonSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, compareSessionCreatedResponse{SessionID: uuid.NewString()})
}

// GetComparison handles GET /api/v1/compare/{session}.
func (s *Server) GetComparison(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	ids, err := s.compare.IDs(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	matrix, err := s.compare.Matrix(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compareSessionResponse{IDs: ids, Matrix: matrix})
}

// AddComparisonItem handles POST /api/v1/compare/{session}/items. A
// rejected add (set full, duplicate) responds 200 with applied=false.
func (s *Server) AddComparisonItem(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	var req compareAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.RecordID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "record_id is required")
		return
	}

	added, err := s.compare.Add(r.Context(), session, req.RecordID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeComparisonMutation(w, r, session, added)
}

// RemoveComparisonItem handles DELETE /api/v1/compare/{session}/items/{id}.
func (s *Server) RemoveComparisonItem(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	removed, err := s.compare.Remove(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeComparisonMutation(w, r, session, removed)
}

func (s *Server) writeComparisonMutation(w http.ResponseWriter, r *http.Request, session string, applied bool) {
	ids, err := s.compare.IDs(r.Context(), session)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compareMutationResponse{Applied: applied, IDs: ids})
}

// ClearComparison handles DELETE /api/v1/compare/{session}.
func (s *Server) ClearComparison(w http.ResponseWriter, r *http.Request) {
	if err := s.compare.Clear(r.Context(), chi.URLParam(r, "session")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportDataset handles POST /api/v1/datasets/import (multipart upload).
func (s *Server) ImportDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	report, err := s.datasets.Import(r.Context(), file, header.Filename)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ExportDataset handles GET /api/v1/datasets/export?format=json|csv.
func (s *Server) ExportDataset(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="catalog.json"`)
		if err := s.datasets.ExportJSON(r.Context(), w); err != nil {
			s.logger.Error("dataset export failed", zap.Error(err))
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="catalog.csv"`)
		if err := s.datasets.ExportCSV(r.Context(), w); err != nil {
			s.logger.Error("dataset export failed", zap.Error(err))
		}
	default:
		writeError(w, http.StatusBadRequest, codeBadRequest, "format must be json or csv")
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRecordNotFound,
		domain.ErrSessionNotFound,
		domain.ErrInvalidRecord,
		domain.ErrDatasetFormat,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
