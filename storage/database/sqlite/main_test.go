package sqliterepos_test

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/prepclass/core"
	"github.com/trezcool/prepclass/storage/database"
)

// setup opens a fresh file-backed DB with the schema applied.
func setup(t *testing.T) *sqlx.DB {
	t.Helper()

	conf := *core.Conf
	conf.Database.Path = filepath.Join(t.TempDir(), "test.db")

	db, err := database.Open(&conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}
