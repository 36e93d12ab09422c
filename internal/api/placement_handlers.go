package api

import (
	"net/http"

	"github.com/derya/frtutor/internal/errors"
	"github.com/derya/frtutor/internal/placement"
)

func (s *Server) handleBuildPlacement(w http.ResponseWriter, r *http.Request) {
	course := r.URL.Query().Get("course")
	if course == "" {
		course = placement.DefaultCourse
	}

	questions, err := s.PlacementService.BuildTest(r.Context(), course)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"course":    course,
		"questions": questions,
	})
}

// scorePlacementRequest echoes the generated questions back with the
// chosen answer indexes, aligned by position. A missing or negative
// index counts as unanswered.
type scorePlacementRequest struct {
	Questions []placement.Question `json:"questions"`
	Answers   []int                `json:"answers"`
}

func (s *Server) handleScorePlacement(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req scorePlacementRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if len(req.Questions) == 0 {
		handleError(w, r, errors.NewBadRequestError("questions required"))
		return
	}

	result, err := s.PlacementService.ScoreTest(r.Context(), profile.ID, req.Questions, req.Answers)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleLatestPlacement(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	rec, err := s.PlacementService.LatestResult(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, rec)
}
