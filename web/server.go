// ABOUTME: Local preview server: serves the built site plus a live JSON API
// ABOUTME: backed by the SQLite index, with optional bearer-token auth.
package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/astroicers/secweekly/site"
	"github.com/astroicers/secweekly/store"
)

// Server serves a built site directory and the live API endpoints.
type Server struct {
	cfg    *Config
	index  *store.Index
	cache  *RenderCache
	router chi.Router
}

// NewServer creates a preview server over the given built site and index.
// index may be nil; search and report endpoints then return 503.
func NewServer(cfg *Config, index *store.Index) *Server {
	s := &Server{
		cfg:   cfg,
		index: index,
		cache: NewRenderCache(func(src string) (string, error) {
			return site.RenderMarkdown(src), nil
		}, 5*time.Minute),
	}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured bind address with
// timeouts to prevent resource exhaustion from slow clients.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Bind,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	log.Printf("preview server listening bind=%s dist=%s", s.cfg.Bind, s.cfg.DistDir)
	return srv.ListenAndServe()
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/search", s.handleSearch)
		r.Get("/reports", s.handleReports)
		r.Get("/terms/{termID}", s.handleTerm)
		r.Post("/preview", s.handlePreview)
	})

	// Everything else is the built static tree.
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.DistDir)))

	return r
}

// requireAuth checks the bearer token when one is configured.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AuthToken != "" {
			if r.Header.Get("Authorization") != "Bearer "+s.cfg.AuthToken {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns a JSON health check with the last indexed build ID.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if s.index != nil {
		if buildID, found, err := s.index.GetLastBuildID(); err == nil && found {
			resp["build_id"] = buildID
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSearch runs a substring search over terms and reports.
// Query parameters: q (required), limit (optional, default 20).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "search index not available"})
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query parameter q"})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	hits, err := s.index.Search(query, limit)
	if err != nil {
		log.Printf("search failed query=%q err=%v", query, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}
	if hits == nil {
		hits = []store.Hit{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": hits,
		"count":   len(hits),
	})
}

// handleReports lists indexed reports, newest first.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "search index not available"})
		return
	}

	rows, err := s.index.ListReports()
	if err != nil {
		log.Printf("list reports failed err=%v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list reports failed"})
		return
	}

	type entry struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Date    string `json:"date"`
		Summary string `json:"summary,omitempty"`
		Page    string `json:"page"`
	}
	entries := make([]entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entry{
			ID:      row.ID,
			Title:   row.Title,
			Date:    row.Date,
			Summary: row.Summary,
			Page:    row.Page,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reports": entries,
		"count":   len(entries),
	})
}

// handleTerm looks up one term by ID in the index.
func (s *Server) handleTerm(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "search index not available"})
		return
	}

	termID := chi.URLParam(r, "termID")
	row, found, err := s.index.GetTerm(termID)
	if err != nil {
		log.Printf("get term failed id=%s err=%v", termID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "term not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":       row.ID,
		"term_en":  row.TermEN,
		"term_zh":  row.TermZH,
		"brief":    row.Brief,
		"category": row.Category,
	})
}

// previewRequest is the POST body for markdown preview rendering.
type previewRequest struct {
	Markdown string `json:"markdown"`
}

// handlePreview renders a markdown draft to an HTML fragment, cached by
// content hash so repeated previews of the same draft are free.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body failed"})
		return
	}

	var req previewRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	html, err := s.cache.Render(req.Markdown)
	if err != nil {
		log.Printf("preview render failed err=%v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// writeJSON writes a JSON response without escaping CJK text.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
