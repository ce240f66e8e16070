package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("creates all expected tables", func(t *testing.T) {
		tables := []string{"accounts", "balances", "catalog_stocks", "owned_positions", "history"}

		for _, table := range tables {
			var exists bool
			err := testDB.GetRawConn().QueryRow(`
				SELECT EXISTS (
					SELECT FROM information_schema.tables
					WHERE table_schema = 'public' AND table_name = $1
				)
			`, table).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "table %s should exist", table)
		}
	})

	t.Run("history rejects unknown actions", func(t *testing.T) {
		testDB.TruncateAll(t)

		_, err := testDB.GetRawConn().Exec(`
			INSERT INTO history (symbol, company, industry, price, day_change, gain_loss, action)
			VALUES ('AAPL', 'Apple Inc.', 'Technology', 178.23, '+1.45%', '+$230', 'HOLD')
		`)
		require.Error(t, err)
	})
}
