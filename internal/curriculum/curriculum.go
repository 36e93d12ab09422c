// Package curriculum loads vocabulary units from JSON files on disk.
// Unit files live at <dir>/<course>/unitN.json and hold an array of raw
// vocabulary entries; fields the tutor does not use are dropped here so
// they never reach the API surface.
package curriculum

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/derya/frtutor/internal/logger"
	"github.com/derya/frtutor/internal/models"
)

const (
	minUnit = 1
	maxUnit = 12
)

// CourseGroup maps a course identifier to the units it contains.
type CourseGroup struct {
	Course string `json:"course"`
	Units  []int  `json:"units"`
}

// CourseGroups is the fixed course layout.
var CourseGroups = []CourseGroup{
	{Course: "101", Units: []int{1, 2, 3, 4, 5, 6}},
	{Course: "102", Units: []int{7, 8, 9, 10, 11, 12}},
}

// rawItem is the on-disk shape; extra JSON fields are ignored.
type rawItem struct {
	ID                 string `json:"id"`
	French             string `json:"french"`
	Turkish            string `json:"turkish"`
	IPA                string `json:"ipa"`
	ExampleSentence    string `json:"example_sentence"`
	ExampleTranslation string `json:"example_translation"`
	Unit               int    `json:"unit"`
	Course             string `json:"course"`
}

var unitIDRe = regexp.MustCompile(`^unit(\d+)$`)

// ParseUnitID extracts the unit number from an id like "unit3".
// Returns false for malformed ids and numbers outside the valid range.
func ParseUnitID(unitID string) (int, bool) {
	m := unitIDRe.FindStringSubmatch(unitID)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < minUnit || n > maxUnit {
		return 0, false
	}
	return n, true
}

// Loader reads unit files from a curriculum directory.
type Loader struct {
	dir string
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// UnitCards loads the cards of one unit. Unknown or invalid unit ids
// and unreadable files return nil rather than an error; a missing unit
// is not a failure, just an empty lesson.
func (l *Loader) UnitCards(unitID string) []models.Card {
	log := logger.Default().WithPrefix("curriculum")

	n, ok := ParseUnitID(unitID)
	if !ok {
		log.Debug("invalid unit id: %s", unitID)
		return nil
	}

	course := courseForUnit(n)
	path := filepath.Join(l.dir, course, fmt.Sprintf("unit%d.json", n))
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("unit file unreadable: %s: %v", path, err)
		return nil
	}

	var items []rawItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Error("unit file malformed: %s: %v", path, err)
		return nil
	}

	cards := make([]models.Card, 0, len(items))
	for idx, item := range items {
		id := item.ID
		if id == "" {
			// Deterministic fallback so progress keys stay stable.
			id = fmt.Sprintf("unit%d:%d", n, idx)
		}
		cards = append(cards, models.Card{
			ID:                 id,
			French:             item.French,
			Turkish:            item.Turkish,
			IPA:                item.IPA,
			ExampleSentence:    item.ExampleSentence,
			ExampleTranslation: item.ExampleTranslation,
			Unit:               item.Unit,
			Course:             item.Course,
		})
	}
	return cards
}

// UnitCount returns the number of cards in a unit, 0 when absent.
func (l *Loader) UnitCount(unitID string) int {
	return len(l.UnitCards(unitID))
}

// CourseCards loads every available unit of a course into one pool,
// skipping units with no file. Used as the placement pool.
func (l *Loader) CourseCards(course string) []models.Card {
	var pool []models.Card
	for _, group := range CourseGroups {
		if group.Course != course {
			continue
		}
		for _, n := range group.Units {
			pool = append(pool, l.UnitCards(fmt.Sprintf("unit%d", n))...)
		}
	}
	return pool
}

func courseForUnit(n int) string {
	for _, group := range CourseGroups {
		for _, u := range group.Units {
			if u == n {
				return group.Course
			}
		}
	}
	return "101"
}
