package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/derya/frtutor/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied. Each call returns an isolated database.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open("file::memory:")
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
