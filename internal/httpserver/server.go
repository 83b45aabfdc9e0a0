// internal/httpserver/server.go
//
// Read-only HTTP inspector for a running or recorded game.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs, access log).
//   - Diagnostics: "/", "/health", "/debug/words".
//   - State machine: GET /graph (Graphviz DOT, or JSON with ?format=json).
//   - Live trace of the in-process tracker: GET /trace.
//   - Prometheus metrics: GET /metrics.
//   - Audit browsing (when an audit store is attached): mounted in routes_audit.go.
//
// Notes:
//   - Nothing here accepts answers or changes game state; play happens only
//     through the presenter the controller was built with.
//   - Every source is optional. Routes whose source is missing are not mounted
//     and answer with the JSON 404.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/words"
)

// Server bundles the router and the sources it reads from.
type Server struct {
	r        *chi.Mux
	tracker  *game.Tracker
	table    *words.Table
	audit    AuditReader
	gatherer prometheus.Gatherer
}

// Option attaches a data source.
type Option func(*Server)

// WithTracker serves the live execution trace.
func WithTracker(t *game.Tracker) Option { return func(s *Server) { s.tracker = t } }

// WithTable serves word list statistics.
func WithTable(t *words.Table) Option { return func(s *Server) { s.table = t } }

// WithAudit serves the audit log.
func WithAudit(a AuditReader) Option { return func(s *Server) { s.audit = a } }

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option { return func(s *Server) { s.gatherer = g } }

// New constructs a Server, installs middleware, and registers routes.
func New(opts ...Option) *Server {
	s := &Server{r: chi.NewRouter()}
	for _, opt := range opts {
		opt(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one debug line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/graph", handleGraph)

	if s.table != nil {
		s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			n, c := s.table.Stats()
			writeJSON(w, map[string]int{"words": n, "clues": c})
		})
	}
	if s.tracker != nil {
		s.r.Get("/trace", s.handleTrace)
	}
	if s.gatherer != nil {
		s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.audit != nil {
		s.mountAudit(s.r)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("inspector request")
})

// ------------------------------ handlers -----------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	endpoints := []string{"/health", "/graph"}
	if s.table != nil {
		endpoints = append(endpoints, "/debug/words")
	}
	if s.tracker != nil {
		endpoints = append(endpoints, "/trace")
	}
	if s.gatherer != nil {
		endpoints = append(endpoints, "/metrics")
	}
	if s.audit != nil {
		endpoints = append(endpoints, "/sessions", "/sessions/{id}/steps", "/rounds")
	}
	writeJSON(w, map[string]any{"service": "guessr-inspector", "endpoints": endpoints})
}

// handleGraph renders the state machine.
func handleGraph(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, game.Transitions())
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	if err := game.WriteDOT(w); err != nil {
		log.Warn().Err(err).Msg("write dot")
	}
}

// handleTrace lists tracker records, optionally for one session.
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	recs := make([]game.StepRecord, 0, s.tracker.Len())
	for rec := range s.tracker.Steps() {
		if session == "" || rec.SessionID == session {
			recs = append(recs, rec)
		}
	}
	writeJSON(w, recs)
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
