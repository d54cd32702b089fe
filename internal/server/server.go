// ABOUTME: HTTP/JSON API for the policy index
// ABOUTME: Routes map 1:1 onto store operations

package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nainya/policystore/internal/config"
	"github.com/nainya/policystore/internal/logger"
	"github.com/nainya/policystore/internal/metrics"
	"github.com/nainya/policystore/pkg/decode"
	"github.com/nainya/policystore/pkg/extract"
	"github.com/nainya/policystore/pkg/policy"
)

// Server exposes the policy index over HTTP
type Server struct {
	store     policy.Store
	log       *logger.Logger
	metrics   *metrics.Metrics
	limiter   *rate.Limiter
	maxUpload int64
	startTime time.Time
	router    *http.ServeMux
}

// NewServer creates the API server and registers its routes
func NewServer(store policy.Store, log *logger.Logger, m *metrics.Metrics, cfg *config.Config) *Server {
	s := &Server{
		store:     store,
		log:       log,
		metrics:   m,
		limiter:   rate.NewLimiter(rate.Limit(cfg.UploadRateRPS), cfg.UploadBurst),
		maxUpload: cfg.MaxUploadBytes,
		startTime: time.Now(),
		router:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("POST /api/v1/policies", s.instrument("ingest", s.handleIngest))
	s.router.HandleFunc("GET /api/v1/policies", s.instrument("list", s.handleList))
	s.router.HandleFunc("GET /api/v1/policies/{id}", s.instrument("get", s.handleGet))
	s.router.HandleFunc("DELETE /api/v1/policies/{id}", s.instrument("remove", s.handleRemove))
	s.router.HandleFunc("DELETE /api/v1/policies", s.instrument("clear", s.handleClear))
	s.router.HandleFunc("GET /api/v1/search", s.instrument("search", s.handleSearch))
	s.router.HandleFunc("GET /api/v1/stats", s.instrument("stats", s.handleStats))
}

// Handler returns the root handler for mounting on an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Response shapes

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse wraps a listing of policy summaries
type ListResponse struct {
	Policies []policy.Summary `json:"policies"`
	Count    int              `json:"count"`
}

// SearchResponse wraps ranked search results
type SearchResponse struct {
	Query   string                `json:"query"`
	Results []policy.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

// StatsResponse reports index and server state
type StatsResponse struct {
	Documents int    `json:"documents"`
	Uptime    string `json:"uptime"`
}

// Handlers

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		jsonResponse(w, http.StatusTooManyRequests, ErrorResponse{Error: "upload rate limit exceeded"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "invalid multipart upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "form field 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "could not read upload"})
		return
	}

	category := r.FormValue("category")
	format := strings.ToLower(filepath.Ext(header.Filename))
	start := time.Now()

	dec, err := decode.ForFile(header.Filename)
	if err != nil {
		s.metrics.RecordIngest(format, "unsupported", 0, time.Since(start))
		jsonResponse(w, http.StatusUnsupportedMediaType, ErrorResponse{
			Error: fmt.Sprintf("unsupported format %q, expected one of %s",
				format, strings.Join(decode.SupportedExtensions(), ", ")),
		})
		return
	}

	decoded, err := dec.Decode(data)
	if err != nil {
		s.metrics.RecordIngest(format, "error", 0, time.Since(start))
		s.log.LogIngest(header.Filename, "", 0, time.Since(start), err)
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, decode.ErrUnreadableSource) {
			status = http.StatusBadRequest
		}
		jsonResponse(w, status, ErrorResponse{Error: err.Error()})
		return
	}

	ex := extract.Extract(decoded.Text, header.Filename)
	decoded.Props.PageCount = decoded.PageCount
	ex.Metadata = extract.Merge(ex.Metadata, decoded.Props)
	if decoded.Title != "" {
		ex.Title = decoded.Title
	}

	doc := s.store.Add(ex, decoded.Text, header.Filename, category)

	duration := time.Since(start)
	s.metrics.RecordIngest(format, "success", len(doc.Sections), duration)
	s.metrics.UpdateStoreStats(s.store.Count())
	s.log.LogIngest(header.Filename, doc.ID, len(doc.Sections), duration, nil)

	jsonResponse(w, http.StatusCreated, doc)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	summaries := s.store.List(category)
	jsonResponse(w, http.StatusOK, ListResponse{Policies: summaries, Count: len(summaries)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "policy not found"})
		return
	}
	jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if !s.store.Remove(r.PathValue("id")) {
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "policy not found"})
		return
	}
	s.metrics.UpdateStoreStats(s.store.Count())
	jsonResponse(w, http.StatusOK, map[string]bool{"removed": true})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	s.metrics.UpdateStoreStats(0)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	// An empty or all-short-term query is a request for zero results,
	// never an error.
	start := time.Now()
	results := s.store.Search(query, category)
	duration := time.Since(start)

	s.metrics.RecordSearch(len(results), duration)
	s.log.LogSearch(query, category, len(results), duration)

	if results == nil {
		results = []policy.SearchResult{}
	}
	jsonResponse(w, http.StatusOK, SearchResponse{Query: query, Results: results, Count: len(results)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, StatsResponse{
		Documents: s.store.Count(),
		Uptime:    time.Since(s.startTime).String(),
	})
}
