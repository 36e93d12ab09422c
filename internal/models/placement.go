package models

import "time"

// PlacementRecord is a persisted placement outcome. Type and unit
// stats are stored as serialized JSON so the schema does not chase the
// placement package's shapes.
type PlacementRecord struct {
	ID              string    `json:"id"`
	ProfileID       int64     `json:"profile_id"`
	CompletedAt     time.Time `json:"completed_at"`
	Total           int       `json:"total"`
	Correct         int       `json:"correct"`
	SuggestedCourse string    `json:"suggested_course"`
	SuggestedUnit   int       `json:"suggested_unit"`
	TypeStatsJSON   string    `json:"type_stats"`
	UnitStatsJSON   string    `json:"unit_stats"`
}
