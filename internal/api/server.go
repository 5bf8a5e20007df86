// Package api provides the HTTP API for reading chronicles.
// GET endpoints are public (read-only).
// POST /api/v1/events requires a bearer token (admin ingestion).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/chronicler/internal/chronicle"
	"github.com/talgya/chronicler/internal/history"
)

const maxBodyBytes = 8 << 20

// Store is the persistence the API reads from and ingests into.
type Store interface {
	Civilizations(ctx context.Context) ([]history.Civilization, error)
	EventCount(ctx context.Context) (int, error)
	Import(ctx context.Context, rec history.Record) ([]string, error)
	SaveChronicle(ctx context.Context, cc *chronicle.CompiledChronicle) error
}

// Server serves compiled chronicles over HTTP.
type Server struct {
	Service  *chronicle.Service
	Store    Store
	Port     string
	AdminKey string       // Bearer token for POST /api/v1/events. Empty = ingestion disabled.
	Metrics  http.Handler // Prometheus scrape handler. Nil = /metrics not served.
	Version  string

	// Per-IP limits on compile endpoints. Zero values use 60 per minute.
	CompileLimit  int
	CompileWindow time.Duration
	TrustProxy    bool // Key limits on X-Forwarded-For instead of the peer address

	started time.Time
}

// Handler builds the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	if s.started.IsZero() {
		s.started = time.Now()
	}
	limit, window := s.CompileLimit, s.CompileWindow
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	compileLimiter := NewRateLimiter(limit, window)
	compileLimiter.TrustForwarded = s.TrustProxy

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/civilizations", s.handleCivilizations)
	mux.HandleFunc("GET /api/v1/chronicle/{civID}", RateLimitMiddleware(compileLimiter, s.handleChronicle))
	mux.HandleFunc("GET /api/v1/chronicle/{civID}/text", RateLimitMiddleware(compileLimiter, s.handleChronicleText))
	mux.HandleFunc("POST /api/v1/chronicles", RateLimitMiddleware(compileLimiter, s.handleBatch))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("POST /api/v1/events", s.adminOnly(s.handleIngest))

	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics)
	}

	return corsMiddleware(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", srv.Addr, "admin_auth", s.AdminKey != "", "metrics", s.Metrics != nil)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	slog.Info("HTTP API stopped")
	return nil
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CHRONICLER_CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CHRONICLER_CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no CHRONICLER_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	civs, err := s.Store.Civilizations(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	events, err := s.Store.EventCount(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":          "chronicler",
		"version":       s.Version,
		"civilizations": len(civs),
		"events":        events,
		"started":       humanize.Time(s.started),
	})
}

func (s *Server) handleCivilizations(w http.ResponseWriter, r *http.Request) {
	civs, err := s.Store.Civilizations(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if civs == nil {
		civs = []history.Civilization{}
	}
	writeJSON(w, http.StatusOK, civs)
}

func (s *Server) handleChronicle(w http.ResponseWriter, r *http.Request) {
	cc, err := s.Service.CompileChronicle(r.Context(), r.PathValue("civID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cc)
}

func (s *Server) handleChronicleText(w http.ResponseWriter, r *http.Request) {
	cc, err := s.Service.CompileChronicle(r.Context(), r.PathValue("civID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, cc.Text)
}

type batchRequest struct {
	CivIDs  []string `json:"civ_ids"`
	Archive bool     `json:"archive"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.CivIDs) == 0 {
		http.Error(w, "civ_ids must name at least one civilization", http.StatusBadRequest)
		return
	}

	results, err := s.Service.CompileAll(r.Context(), req.CivIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if req.Archive {
		for _, cc := range results {
			if err := s.Store.SaveChronicle(r.Context(), cc); err != nil {
				s.writeError(w, err)
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var rec history.Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&rec); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(rec.Civilization.ID) == "" {
		http.Error(w, "civilization.id is required", http.StatusBadRequest)
		return
	}

	rec.Events = history.Normalize(rec.Events)
	if err := history.Validate(rec.Civilization.Name, rec.Events); err != nil {
		s.writeError(w, err)
		return
	}

	ids, err := s.Store.Import(r.Context(), rec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"civilization": rec.Civilization.ID,
		"imported":     len(ids),
		"event_ids":    ids,
	})
}

// writeError maps domain errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var malformed *history.MalformedEventError
	switch {
	case errors.As(err, &malformed):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    fmt.Sprintf("The chronicler could not read this history: field %q has the value %q, which is not allowed.", malformed.Field, malformed.Value),
			"event_id": malformed.EventID,
			"field":    malformed.Field,
			"value":    malformed.Value,
		})
	case errors.Is(err, chronicle.ErrCivilizationNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
