package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/threatlens/threatlens/internal/assistant"
	"github.com/threatlens/threatlens/internal/collector"
	"github.com/threatlens/threatlens/internal/cve"
	"github.com/threatlens/threatlens/internal/pipeline"
	"github.com/threatlens/threatlens/internal/search"
	"github.com/threatlens/threatlens/internal/storage"
)

const defaultListLimit = 200

// Server exposes the ingestion and report APIs over HTTP.
type Server struct {
	feeds    collector.FeedCollector
	pipeline *pipeline.Service
	store    storage.ReportStore
	index    *search.Index
	cve      *cve.Client
}

// New creates the API server. index may be nil when search is disabled.
func New(feeds collector.FeedCollector, pipe *pipeline.Service, store storage.ReportStore, index *search.Index, cveClient *cve.Client) *Server {
	return &Server{
		feeds:    feeds,
		pipeline: pipe,
		store:    store,
		index:    index,
		cve:      cveClient,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/ingest", s.handleIngest).Methods("POST")
	router.HandleFunc("/reports", s.handleListReports).Methods("GET")
	router.HandleFunc("/reports/{id:[0-9]+}", s.handleGetReport).Methods("GET")
	router.HandleFunc("/search", s.handleSearch).Methods("GET")
	router.HandleFunc("/cve/{id}", s.handleCVE).Methods("GET")
	router.HandleFunc("/assistant", s.handleAssistant).Methods("POST")

	return router
}

type ingestRequest struct {
	RSSURL   string `json:"rss_url"`
	MaxItems int    `json:"max_items"`
	Save     bool   `json:"save"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	req := ingestRequest{MaxItems: 5, Save: true}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RSSURL == "" {
		respondError(w, http.StatusBadRequest, "rss_url is required")
		return
	}

	entries, err := s.feeds.FetchEntries(r.Context(), req.RSSURL, req.MaxItems)
	if err != nil {
		logrus.Errorf("Feed fetch failed for %s: %v", req.RSSURL, err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reports := s.pipeline.Ingest(r.Context(), entries, req.Save)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(reports),
		"items": reports,
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	summaries, err := s.store.ListSummaries(limit)
	if err != nil {
		logrus.Errorf("Failed to list reports: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(summaries),
		"items": summaries,
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	report, err := s.store.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to load report %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		respondError(w, http.StatusServiceUnavailable, "search is disabled")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	hits, err := s.index.Search(query, limit)
	if err != nil {
		logrus.Errorf("Search for %q failed: %v", query, err)
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(hits),
		"items": hits,
	})
}

func (s *Server) handleCVE(w http.ResponseWriter, r *http.Request) {
	cveID := strings.ToUpper(mux.Vars(r)["id"])

	details := s.cve.Fetch(r.Context(), cveID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cve_id":      cveID,
		"details":     details,
		"explanation": cve.Explain(details),
	})
}

type assistantRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"response": assistant.Respond(req.Query),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
