// Package testutil provides shared fixtures for registry and manifest tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jvanvugt/auto-cli/internal/domain/app"
	"github.com/jvanvugt/auto-cli/internal/infrastructure/sqlite"
)

// TempRegistry opens a fresh migrated registry database under t.TempDir and
// returns its repository. The database closes when the test completes.
func TempRegistry(t *testing.T) app.Repository {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err, "Failed to create test registry")
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewAppRepository(db)
}

// SaveApp validates and persists an app, failing the test on error.
func SaveApp(t *testing.T, repo app.Repository, name, location string) *app.App {
	t.Helper()
	a, err := app.NewApp(name, location)
	require.NoError(t, err)
	require.NoError(t, repo.Save(a))
	return a
}
