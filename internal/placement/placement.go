// Package placement builds and scores the diagnostic test that maps a
// new learner to a suggested course and unit. It assumes no prior
// memory state exists for the learner.
package placement

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/derya/frtutor/internal/models"
)

// QuestionType distinguishes the three diagnostic archetypes.
type QuestionType string

const (
	Recognition      QuestionType = "recognition"
	AudioRecognition QuestionType = "audio_recognition"
	ConfusablePair   QuestionType = "confusable_pair"
)

const (
	// MaxQuestions caps the size of one placement run.
	MaxQuestions = 12
	// maxPerType caps each archetype before backfilling.
	maxPerType = 4
	// weakUnitThreshold is the accuracy below which a unit counts as weak.
	weakUnitThreshold = 0.75

	// DefaultCourse and DefaultUnit are the fallbacks when the pool
	// yields no questions ("placement unavailable" for the caller).
	DefaultCourse = "101"
	DefaultUnit   = 1
)

// Question is one diagnostic question. Immutable once generated.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Prompt      string       `json:"prompt"`
	Choices     []string     `json:"choices"`
	AnswerIndex int          `json:"answer_index"`
	Unit        int          `json:"unit"`
	Course      string       `json:"course"`
	AudioText   string       `json:"audio_text,omitempty"`
	Helper      string       `json:"helper,omitempty"`
}

// TypeStats aggregates correctness for one question type.
type TypeStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// UnitStats aggregates correctness for one curriculum unit.
type UnitStats struct {
	Unit    int `json:"unit"`
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Result is the scored outcome of a placement run.
type Result struct {
	CompletedAt     time.Time                  `json:"completed_at"`
	Total           int                        `json:"total"`
	Correct         int                        `json:"correct"`
	SuggestedCourse string                     `json:"suggested_course"`
	SuggestedUnit   int                        `json:"suggested_unit"`
	TypeStats       map[QuestionType]TypeStats `json:"type_stats"`
	UnitStats       []UnitStats                `json:"unit_stats"`
}

// BuildQuestions generates up to MaxQuestions questions from the card
// pool: up to four each of recognition, audio recognition and
// confusable-pair, backfilled with extra recognition questions when the
// confusable catalog or the pool runs short. The final set is shuffled.
// An empty pool yields an empty slice.
func BuildQuestions(pool []models.Card, rng *rand.Rand) []Question {
	usable := uniqueByID(pool)
	if len(usable) == 0 {
		return nil
	}

	target := MaxQuestions
	if len(usable) < target {
		target = len(usable)
	}
	recognitionCount := min(maxPerType, target)
	audioCount := min(maxPerType, max(target-recognitionCount, 0))
	confusableCount := min(maxPerType, max(target-recognitionCount-audioCount, 0))

	questions := generateRecognition(usable, recognitionCount, rng)
	questions = append(questions, generateAudio(usable, audioCount, rng)...)
	questions = append(questions, generateConfusable(usable, confusableCount, rng)...)

	if len(questions) < target {
		for _, q := range generateRecognition(usable, target-len(questions), rng) {
			q.ID = "filler-" + q.ID
			questions = append(questions, q)
		}
	}

	questions = shuffle(questions, rng)
	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	return questions
}

// Score evaluates answers against questions and derives the suggestion.
// The suggested unit is the lowest-numbered weak unit (accuracy below
// 0.75); with no weak unit the learner advances one unit past the last
// answered, capped at the highest unit seen in the test. Mismatched or
// missing answers count as wrong.
func Score(questions []Question, answers []int, now time.Time) Result {
	typeStats := map[QuestionType]TypeStats{
		Recognition:      {},
		AudioRecognition: {},
		ConfusablePair:   {},
	}
	byUnit := map[int]*UnitStats{}
	var units []int
	correct := 0

	for i, q := range questions {
		isCorrect := i < len(answers) && answers[i] == q.AnswerIndex
		if isCorrect {
			correct++
		}

		ts := typeStats[q.Type]
		ts.Total++
		if isCorrect {
			ts.Correct++
		}
		typeStats[q.Type] = ts

		us, ok := byUnit[q.Unit]
		if !ok {
			us = &UnitStats{Unit: q.Unit}
			byUnit[q.Unit] = us
			units = append(units, q.Unit)
		}
		us.Total++
		if isCorrect {
			us.Correct++
		}
	}

	sort.Ints(units)
	unitStats := make([]UnitStats, 0, len(units))
	for _, u := range units {
		unitStats = append(unitStats, *byUnit[u])
	}

	suggestedCourse := DefaultCourse
	if len(questions) > 0 && questions[0].Course != "" {
		suggestedCourse = questions[0].Course
	}

	suggestedUnit := DefaultUnit
	if len(unitStats) > 0 {
		weak := 0
		for _, us := range unitStats {
			if float64(us.Correct)/float64(us.Total) < weakUnitThreshold {
				weak = us.Unit
				break
			}
		}
		if weak > 0 {
			suggestedUnit = weak
		} else {
			lastUnit := unitStats[len(unitStats)-1].Unit
			maxSeen := lastUnit // unitStats is sorted ascending
			suggestedUnit = min(lastUnit+1, maxSeen)
		}
	}

	return Result{
		CompletedAt:     now,
		Total:           len(questions),
		Correct:         correct,
		SuggestedCourse: suggestedCourse,
		SuggestedUnit:   suggestedUnit,
		TypeStats:       typeStats,
		UnitStats:       unitStats,
	}
}

func generateRecognition(pool []models.Card, count int, rng *rand.Rand) []Question {
	questions := make([]Question, 0, count)
	for _, card := range pick(pool, count, rng) {
		choices, answerIndex := meaningChoices(card, pool, rng)
		questions = append(questions, Question{
			ID:          "recognition-" + card.ID,
			Type:        Recognition,
			Prompt:      fmt.Sprintf("%s ne demek?", card.French),
			Choices:     choices,
			AnswerIndex: answerIndex,
			Unit:        card.Unit,
			Course:      card.Course,
		})
	}
	return questions
}

func generateAudio(pool []models.Card, count int, rng *rand.Rand) []Question {
	questions := make([]Question, 0, count)
	for _, card := range pick(pool, count, rng) {
		choices, answerIndex := meaningChoices(card, pool, rng)
		questions = append(questions, Question{
			ID:          "audio-" + card.ID,
			Type:        AudioRecognition,
			Prompt:      "Sesi dinle ve dogru anlami sec.",
			Choices:     choices,
			AnswerIndex: answerIndex,
			Unit:        card.Unit,
			Course:      card.Course,
			AudioText:   card.French,
		})
	}
	return questions
}

func generateConfusable(pool []models.Card, count int, rng *rand.Rand) []Question {
	byFrench := make(map[string]models.Card, len(pool))
	for _, card := range pool {
		byFrench[strings.ToLower(strings.TrimSpace(card.French))] = card
	}

	var questions []Question
	for _, tmpl := range shuffle(confusableCatalog, rng) {
		left, okLeft := byFrench[tmpl.Left]
		right, okRight := byFrench[tmpl.Right]
		if !okLeft || !okRight {
			continue
		}

		choices := shuffle([]string{left.French, right.French}, rng)
		answerIndex := 0
		for i, choice := range choices {
			if strings.ToLower(choice) == tmpl.Answer {
				answerIndex = i
				break
			}
		}

		questions = append(questions, Question{
			ID:          fmt.Sprintf("confusable-%s-%s", left.ID, right.ID),
			Type:        ConfusablePair,
			Prompt:      tmpl.Prompt,
			Helper:      tmpl.Helper,
			Choices:     choices,
			AnswerIndex: answerIndex,
			Unit:        min(left.Unit, right.Unit),
			Course:      left.Course,
		})
		if len(questions) == count {
			break
		}
	}
	return questions
}

// meaningChoices builds the 4-way translation choices for a card: its
// own translation plus up to three distinct-translation distractors.
// If the correct translation cannot be found after the shuffle the
// answer index falls back to 0 rather than -1; that fallback is part of
// the contract, not a silent bug.
func meaningChoices(card models.Card, pool []models.Card, rng *rand.Rand) ([]string, int) {
	var candidates []models.Card
	seen := map[string]bool{}
	for _, other := range pool {
		if other.ID == card.ID || other.Turkish == card.Turkish || seen[other.Turkish] {
			continue
		}
		seen[other.Turkish] = true
		candidates = append(candidates, other)
	}

	choices := []string{card.Turkish}
	for _, distractor := range pick(candidates, 3, rng) {
		choices = append(choices, distractor.Turkish)
	}
	choices = shuffle(choices, rng)
	if len(choices) > 4 {
		choices = choices[:4]
	}

	for i, choice := range choices {
		if choice == card.Turkish {
			return choices, i
		}
	}
	return choices, 0
}

// pick shuffles a copy of cards and takes the first count.
func pick(cards []models.Card, count int, rng *rand.Rand) []models.Card {
	out := shuffle(cards, rng)
	if count < len(out) {
		out = out[:count]
	}
	return out
}

// shuffle is a Fisher-Yates shuffle over a copy of items.
func shuffle[T any](items []T, rng *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func uniqueByID(cards []models.Card) []models.Card {
	seen := make(map[string]bool, len(cards))
	out := make([]models.Card, 0, len(cards))
	for _, card := range cards {
		if seen[card.ID] {
			continue
		}
		seen[card.ID] = true
		out = append(out, card)
	}
	return out
}
