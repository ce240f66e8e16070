package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoxly/stoxly/internal/models"
)

func buyFromCatalog(t *testing.T, testDB *TestDB, owner, symbol string, newBalance decimal.Decimal) *models.Position {
	t.Helper()
	stock, err := testDB.GetCatalogStock(symbol)
	require.NoError(t, err)
	p := &models.Position{
		Owner:     owner,
		Symbol:    stock.Symbol,
		Company:   stock.Company,
		Industry:  stock.Industry,
		Price:     stock.Price,
		DayChange: stock.DayChange,
		GainLoss:  stock.GainLoss,
	}
	require.NoError(t, testDB.RecordBuy(owner, newBalance, p))
	return p
}

func TestPositionsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("RecordBuy keeps one row per owner and symbol", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		buyFromCatalog(t, testDB, AdminUsername, "AAPL", decimal.NewFromInt(99000))
		buyFromCatalog(t, testDB, AdminUsername, "AAPL", decimal.NewFromInt(98000))

		positions, err := testDB.GetPositions(AdminUsername)
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.Equal(t, "AAPL", positions[0].Symbol)
	})

	t.Run("positions are scoped to their owner", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())
		require.NoError(t, testDB.CreateAccount("alice", "h", decimal.NewFromInt(10000)))

		buyFromCatalog(t, testDB, AdminUsername, "AAPL", decimal.NewFromInt(99000))
		buyFromCatalog(t, testDB, "alice", "KO", decimal.NewFromInt(9941))

		adminPositions, err := testDB.GetPositions(AdminUsername)
		require.NoError(t, err)
		require.Len(t, adminPositions, 1)
		assert.Equal(t, "AAPL", adminPositions[0].Symbol)

		alicePositions, err := testDB.GetPositions("alice")
		require.NoError(t, err)
		require.Len(t, alicePositions, 1)
		assert.Equal(t, "KO", alicePositions[0].Symbol)

		_, err = testDB.GetPosition("alice", "AAPL")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("RecordSell removes the position and credits the balance", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		p := buyFromCatalog(t, testDB, AdminUsername, "AAPL", decimal.NewFromInt(99000))
		require.NoError(t, testDB.RecordSell(AdminUsername, decimal.NewFromInt(100000), p))

		positions, err := testDB.GetPositions(AdminUsername)
		require.NoError(t, err)
		assert.Empty(t, positions)

		balance, err := testDB.GetBalance(AdminUsername)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100000).Equal(balance))
	})

	t.Run("RecordSell fails with NotFound for an unowned symbol", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		p := testPosition()
		p.Owner = AdminUsername
		err := testDB.RecordSell(AdminUsername, decimal.NewFromInt(100000), p)
		require.ErrorIs(t, err, ErrNotFound)

		// The balance credit rolled back with it.
		balance, err := testDB.GetBalance(AdminUsername)
		require.NoError(t, err)
		assert.True(t, AdminSeedBalance.Equal(balance))
	})
}

func TestHistoryRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("GetHistory returns entries most recent first", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		p := buyFromCatalog(t, testDB, AdminUsername, "AAPL", decimal.NewFromInt(99000))
		require.NoError(t, testDB.RecordSell(AdminUsername, decimal.NewFromInt(100000), p))
		buyFromCatalog(t, testDB, AdminUsername, "KO", decimal.NewFromInt(99941))

		history, err := testDB.GetHistory()
		require.NoError(t, err)
		require.Len(t, history, 3)

		assert.Equal(t, models.ActionBuy, history[0].Action)
		assert.Equal(t, "KO", history[0].Symbol)
		assert.Equal(t, models.ActionSell, history[1].Action)
		assert.Equal(t, models.ActionBuy, history[2].Action)
		assert.Greater(t, history[0].ID, history[1].ID)
		assert.Greater(t, history[1].ID, history[2].ID)
	})

	t.Run("history survives the position it records", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		p := buyFromCatalog(t, testDB, AdminUsername, "AAPL", decimal.NewFromInt(99000))
		require.NoError(t, testDB.RecordSell(AdminUsername, decimal.NewFromInt(100000), p))

		history, err := testDB.GetHistory()
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("ClearHistory empties the ledger", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		buyFromCatalog(t, testDB, AdminUsername, "AAPL", decimal.NewFromInt(99000))
		require.NoError(t, testDB.ClearHistory())

		history, err := testDB.GetHistory()
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
