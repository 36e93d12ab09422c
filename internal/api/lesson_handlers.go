package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/derya/frtutor/internal/errors"
	"github.com/derya/frtutor/internal/logger"
	"github.com/derya/frtutor/internal/session"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	unitID := chi.URLParam(r, "unitID")

	start, err := s.LessonService.StartSession(r.Context(), profile.ID, unitID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, start)
}

// reviewRequest carries one answer plus the client-held session state.
// The session queue lives on the client between requests so the server
// stays stateless; the server re-sequences it and hands it back.
type reviewRequest struct {
	UnitID      string           `json:"unit_id"`
	CardID      string           `json:"card_id"`
	Known       bool             `json:"known"`
	Queue       session.Queue    `json:"queue"`
	Counters    session.Counters `json:"counters"`
	TimeSeconds float64          `json:"time_seconds"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.UnitID == "" {
		handleError(w, r, errors.NewBadRequestError("unit_id required"))
		return
	}

	outcome, err := s.LessonService.Review(r.Context(), profile.ID, req.UnitID, req.CardID, req.Known, req.Queue, req.Counters, req.TimeSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	course := r.URL.Query().Get("course")

	records, err := s.LessonService.Progress(r.Context(), profile.ID, course)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"progress": records})
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Warn("invalid due limit: %s", v)
			handleError(w, r, errors.NewBadRequestError("invalid limit"))
			return
		}
		limit = n
	}

	records, err := s.LessonService.DueCards(r.Context(), profile.ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"due": records})
}
