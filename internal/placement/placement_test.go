package placement_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derya/frtutor/internal/models"
	"github.com/derya/frtutor/internal/placement"
)

func poolOf(n int) []models.Card {
	cards := make([]models.Card, n)
	for i := range cards {
		cards[i] = models.Card{
			ID:      fmt.Sprintf("c%d", i),
			French:  fmt.Sprintf("mot%d", i),
			Turkish: fmt.Sprintf("anlam%d", i),
			Unit:    i/4 + 1,
			Course:  "101",
		}
	}
	return cards
}

func TestBuildQuestions_EmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, placement.BuildQuestions(nil, rng))
	assert.Empty(t, placement.BuildQuestions([]models.Card{}, rng))
}

func TestBuildQuestions_TargetSizeAndValidity(t *testing.T) {
	pool := poolOf(30)

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		questions := placement.BuildQuestions(pool, rng)

		require.Len(t, questions, placement.MaxQuestions, "seed %d", seed)
		for _, q := range questions {
			assert.NotEmpty(t, q.ID)
			assert.NotEmpty(t, q.Prompt)
			require.NotEmpty(t, q.Choices)
			assert.GreaterOrEqual(t, q.AnswerIndex, 0, "answer index must never be -1")
			assert.Less(t, q.AnswerIndex, len(q.Choices))
			assert.Equal(t, "101", q.Course)
			assert.Greater(t, q.Unit, 0)
		}
	}
}

func TestBuildQuestions_SmallPoolTruncates(t *testing.T) {
	pool := poolOf(5)
	rng := rand.New(rand.NewSource(7))

	questions := placement.BuildQuestions(pool, rng)

	assert.Len(t, questions, 5, "target is min(12, poolSize)")
}

func TestBuildQuestions_DeduplicatesPool(t *testing.T) {
	pool := append(poolOf(3), poolOf(3)...)
	rng := rand.New(rand.NewSource(7))

	questions := placement.BuildQuestions(pool, rng)

	assert.Len(t, questions, 3)
}

func TestBuildQuestions_RecognitionChoices(t *testing.T) {
	pool := poolOf(20)
	rng := rand.New(rand.NewSource(3))

	questions := placement.BuildQuestions(pool, rng)

	sawRecognition := false
	for _, q := range questions {
		if q.Type != placement.Recognition && q.Type != placement.AudioRecognition {
			continue
		}
		sawRecognition = true
		assert.Len(t, q.Choices, 4, "big pool yields full 4-way choices")
		seen := map[string]bool{}
		for _, choice := range q.Choices {
			assert.False(t, seen[choice], "choices must be distinct")
			seen[choice] = true
		}
		if q.Type == placement.AudioRecognition {
			assert.NotEmpty(t, q.AudioText, "audio questions carry the word to play")
		} else {
			assert.Empty(t, q.AudioText)
		}
	}
	assert.True(t, sawRecognition)
}

func TestBuildQuestions_ConfusablePairsRequireBothWords(t *testing.T) {
	pool := poolOf(20)
	pool[0].French = "tu"
	pool[1].French = "vous"

	found := false
	for seed := int64(0); seed < 10 && !found; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, q := range placement.BuildQuestions(pool, rng) {
			if q.Type != placement.ConfusablePair {
				continue
			}
			found = true
			require.Len(t, q.Choices, 2)
			assert.ElementsMatch(t, []string{"tu", "vous"}, q.Choices)
			assert.Equal(t, "vous", q.Choices[q.AnswerIndex], "catalog picks the formal address")
			assert.NotEmpty(t, q.Helper)
		}
	}
	assert.True(t, found, "tu/vous pair present in pool must eventually emit a confusable question")
}

func TestBuildQuestions_NoConfusablesWithoutCatalogWords(t *testing.T) {
	pool := poolOf(20) // no catalog words at all
	rng := rand.New(rand.NewSource(5))

	for _, q := range placement.BuildQuestions(pool, rng) {
		assert.NotEqual(t, placement.ConfusablePair, q.Type)
	}
}

func TestScore_CountsCorrectAnswers(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	questions := []placement.Question{
		{Type: placement.Recognition, AnswerIndex: 0, Unit: 1, Course: "101"},
		{Type: placement.Recognition, AnswerIndex: 1, Unit: 1, Course: "101"},
		{Type: placement.AudioRecognition, AnswerIndex: 0, Unit: 2, Course: "101"},
		{Type: placement.ConfusablePair, AnswerIndex: 2, Unit: 2, Course: "101"},
	}

	result := placement.Score(questions, []int{0, 1, 1, 2}, now)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Correct)
	assert.Equal(t, placement.TypeStats{Correct: 2, Total: 2}, result.TypeStats[placement.Recognition])
	assert.Equal(t, placement.TypeStats{Correct: 0, Total: 1}, result.TypeStats[placement.AudioRecognition])
	assert.Equal(t, placement.TypeStats{Correct: 1, Total: 1}, result.TypeStats[placement.ConfusablePair])
	assert.Equal(t, now, result.CompletedAt)
}

func TestScore_FirstWeakUnitWins(t *testing.T) {
	now := time.Now()
	var questions []placement.Question
	var answers []int

	// Unit 1: 2/4 (weak). Unit 2: 4/4 (strong).
	for i := 0; i < 4; i++ {
		questions = append(questions, placement.Question{Type: placement.Recognition, AnswerIndex: 0, Unit: 1, Course: "101"})
		if i < 2 {
			answers = append(answers, 0)
		} else {
			answers = append(answers, 1)
		}
	}
	for i := 0; i < 4; i++ {
		questions = append(questions, placement.Question{Type: placement.Recognition, AnswerIndex: 0, Unit: 2, Course: "101"})
		answers = append(answers, 0)
	}

	result := placement.Score(questions, answers, now)

	assert.Equal(t, 1, result.SuggestedUnit, "earliest weak unit wins even when later units are strong")
	require.Len(t, result.UnitStats, 2)
	assert.Equal(t, placement.UnitStats{Unit: 1, Correct: 2, Total: 4}, result.UnitStats[0])
	assert.Equal(t, placement.UnitStats{Unit: 2, Correct: 4, Total: 4}, result.UnitStats[1])
}

func TestScore_AllStrongAdvancesCapped(t *testing.T) {
	now := time.Now()
	questions := []placement.Question{
		{Type: placement.Recognition, AnswerIndex: 0, Unit: 2, Course: "101"},
		{Type: placement.Recognition, AnswerIndex: 0, Unit: 3, Course: "101"},
	}

	result := placement.Score(questions, []int{0, 0}, now)

	// Advance past the last unit, capped at the highest unit in the test.
	assert.Equal(t, 3, result.SuggestedUnit)
}

func TestScore_EmptyTest(t *testing.T) {
	result := placement.Score(nil, nil, time.Now())

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Correct)
	assert.Equal(t, placement.DefaultCourse, result.SuggestedCourse)
	assert.Equal(t, placement.DefaultUnit, result.SuggestedUnit)
	assert.Empty(t, result.UnitStats)
}

func TestScore_MissingAnswersCountWrong(t *testing.T) {
	questions := []placement.Question{
		{Type: placement.Recognition, AnswerIndex: 0, Unit: 1, Course: "101"},
		{Type: placement.Recognition, AnswerIndex: 0, Unit: 1, Course: "101"},
	}

	result := placement.Score(questions, []int{0}, time.Now())

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Correct)
}
