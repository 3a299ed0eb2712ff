package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pagecap/pagecap/sqlite"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory database with the schema applied.
func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM captures").Scan(&count)
		require.NoError(t, err)
	})

	t.Run("opens file-based database", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "journal.db")
		db := sqlite.NewDB(path)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM captures").Scan(&count)
		require.NoError(t, err)
	})
}
