// internal/httpserver/routes_audit.go
//
// HTTP routes for browsing the audit log.
//   - GET /sessions              → recent sessions (?limit=, default 20, max 200)
//   - GET /sessions/{id}/steps   → one session's steps in execution order
//   - GET /rounds                → recent finished rounds (?limit=)

package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/guessr/internal/audit"
	"github.com/robalobadob/guessr/internal/game"
)

const maxLimit = 200

// AuditReader is the read side of the audit log.
type AuditReader interface {
	Sessions(ctx context.Context, limit int) ([]audit.Session, error)
	Steps(ctx context.Context, sessionID string) ([]game.StepRecord, error)
	Rounds(ctx context.Context, limit int) ([]game.RoundResult, error)
}

// mountAudit registers the audit routes.
func (s *Server) mountAudit(r chi.Router) {
	r.Get("/sessions", s.handleSessions)
	r.Get("/sessions/{id}/steps", s.handleSessionSteps)
	r.Get("/rounds", s.handleRounds)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	rows, err := s.audit.Sessions(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list sessions")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, rows)
}

func (s *Server) handleSessionSteps(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recs, err := s.audit.Steps(r.Context(), id)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", id).Msg("list steps")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if len(recs) == 0 {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, recs)
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	rows, err := s.audit.Rounds(r.Context(), limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list rounds")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, rows)
}

// parseLimit reads ?limit=; 0 lets the store pick its default.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "invalid_limit")
		return 0, false
	}
	return min(n, maxLimit), true
}
