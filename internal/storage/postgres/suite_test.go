package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/database"
	"gamersdb/backend/internal/storage/storetest"
	"gamersdb/backend/internal/testutil"
)

// testDatabaseEnv names a disposable postgres database. The games table in
// it is truncated before every test.
const testDatabaseEnv = "TEST_DATABASE_URL"

type PostgresStoreSuite struct {
	storetest.StoreSuite
}

func TestPostgresStoreSuite(t *testing.T) {
	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}

	s := new(PostgresStoreSuite)
	s.NewStore = func() catalog.Store {
		t := s.T()
		logger := testutil.NopLogger()

		db, err := database.Connect(dsn, database.DefaultPoolConfig(), logger)
		require.NoError(t, err)

		store := New(db, logger)
		require.NoError(t, store.Migrate())
		require.NoError(t, db.Exec("TRUNCATE TABLE games").Error)
		return store
	}
	suite.Run(t, s)
}
