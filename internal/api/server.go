package api

import (
	"github.com/derya/frtutor/internal/curriculum"
	"github.com/derya/frtutor/internal/db"
	"github.com/derya/frtutor/internal/services"
	"github.com/derya/frtutor/internal/worker"
)

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	DB               *db.DB
	Curriculum       *curriculum.Loader
	ProfileService   services.ProfileService
	LessonService    services.LessonService
	PlacementService services.PlacementService
	HistoryPool      *worker.Pool
}
