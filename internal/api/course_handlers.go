package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/derya/frtutor/internal/curriculum"
	"github.com/derya/frtutor/internal/errors"
	"github.com/derya/frtutor/internal/logger"
)

type courseUnit struct {
	Unit      int `json:"unit"`
	CardCount int `json:"card_count"`
}

type courseSummary struct {
	Course string       `json:"course"`
	Units  []courseUnit `json:"units"`
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing courses")

	courses := make([]courseSummary, 0, len(curriculum.CourseGroups))
	for _, group := range curriculum.CourseGroups {
		summary := courseSummary{Course: group.Course, Units: make([]courseUnit, 0, len(group.Units))}
		for _, n := range group.Units {
			unitID := fmt.Sprintf("unit%d", n)
			summary.Units = append(summary.Units, courseUnit{
				Unit:      n,
				CardCount: s.Curriculum.UnitCount(unitID),
			})
		}
		courses = append(courses, summary)
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"courses": courses,
	})
}

func (s *Server) handleUnitCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	unitID := chi.URLParam(r, "unitID")
	log.Debug("loading unit cards: unit=%s", unitID)

	if _, ok := curriculum.ParseUnitID(unitID); !ok {
		handleError(w, r, errors.NewBadRequestError("invalid unit id"))
		return
	}

	cards := s.Curriculum.UnitCards(unitID)
	if len(cards) == 0 {
		handleError(w, r, errors.NewNotFoundError("unit", unitID))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"unit":  unitID,
		"cards": cards,
	})
}
