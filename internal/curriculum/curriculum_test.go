package curriculum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derya/frtutor/internal/curriculum"
)

func writeUnit(t *testing.T, dir, course, name, content string) {
	t.Helper()
	courseDir := filepath.Join(dir, course)
	require.NoError(t, os.MkdirAll(courseDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(courseDir, name), []byte(content), 0o644))
}

const unit1JSON = `[
  {"id": "u1-bonjour", "french": "bonjour", "turkish": "merhaba", "ipa": "bɔ̃ʒuʁ",
   "example_sentence": "Bonjour, ça va?", "example_translation": "Merhaba, nasılsın?",
   "unit": 1, "course": "101", "cefr_level": "A1", "tags": ["greeting"]},
  {"french": "merci", "turkish": "teşekkürler", "unit": 1, "course": "101"}
]`

func TestParseUnitID(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		ok   bool
	}{
		{"unit1", 1, true},
		{"unit12", 12, true},
		{"unit0", 0, false},
		{"unit13", 0, false},
		{"unit", 0, false},
		{"lesson1", 0, false},
		{"unit1x", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		n, ok := curriculum.ParseUnitID(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.n, n, "input %q", tt.in)
	}
}

func TestUnitCards_LoadsAndStrips(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "101", "unit1.json", unit1JSON)
	loader := curriculum.NewLoader(dir)

	cards := loader.UnitCards("unit1")

	require.Len(t, cards, 2)
	assert.Equal(t, "u1-bonjour", cards[0].ID)
	assert.Equal(t, "bonjour", cards[0].French)
	assert.Equal(t, "merhaba", cards[0].Turkish)
	assert.Equal(t, 1, cards[0].Unit)
	assert.Equal(t, "101", cards[0].Course)
}

func TestUnitCards_GeneratesDeterministicIDs(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "101", "unit1.json", unit1JSON)
	loader := curriculum.NewLoader(dir)

	cards := loader.UnitCards("unit1")

	require.Len(t, cards, 2)
	assert.Equal(t, "unit1:1", cards[1].ID, "missing id falls back to unitN:index")
}

func TestUnitCards_MissingOrInvalid(t *testing.T) {
	loader := curriculum.NewLoader(t.TempDir())

	assert.Nil(t, loader.UnitCards("unit3"), "missing file is not an error")
	assert.Nil(t, loader.UnitCards("unit99"))
	assert.Nil(t, loader.UnitCards("bogus"))
}

func TestUnitCards_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "101", "unit2.json", `{"not": "an array"`)
	loader := curriculum.NewLoader(dir)

	assert.Nil(t, loader.UnitCards("unit2"))
}

func TestUnitCount(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "101", "unit1.json", unit1JSON)
	loader := curriculum.NewLoader(dir)

	assert.Equal(t, 2, loader.UnitCount("unit1"))
	assert.Equal(t, 0, loader.UnitCount("unit5"))
}

func TestCourseCards_PoolsAllUnits(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "101", "unit1.json", unit1JSON)
	writeUnit(t, dir, "101", "unit2.json", `[{"id": "u2-salut", "french": "salut", "turkish": "selam", "unit": 2, "course": "101"}]`)
	loader := curriculum.NewLoader(dir)

	pool := loader.CourseCards("101")

	assert.Len(t, pool, 3, "pool spans every unit file of the course")
	assert.Empty(t, loader.CourseCards("102"))
	assert.Empty(t, loader.CourseCards("999"))
}
