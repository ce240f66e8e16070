package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("GetCatalog returns all stocks ordered by symbol", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		catalog, err := testDB.GetCatalog()
		require.NoError(t, err)
		require.Len(t, catalog, 6)

		symbols := make([]string, 0, len(catalog))
		for _, s := range catalog {
			symbols = append(symbols, s.Symbol)
		}
		assert.Equal(t, []string{"AAPL", "AMZN", "JPM", "KO", "MSFT", "TSLA"}, symbols)
	})

	t.Run("GetCatalogStock returns NotFound for unknown symbol", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		_, err := testDB.GetCatalogStock("NOPE")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("BumpAllPrices moves every price by at most one unit", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		before, err := testDB.GetCatalog()
		require.NoError(t, err)
		prices := make(map[string]decimal.Decimal, len(before))
		for _, s := range before {
			prices[s.Symbol] = s.Price
		}

		one := decimal.NewFromInt(1)
		for i := 0; i < 5; i++ {
			require.NoError(t, testDB.BumpAllPrices())

			after, err := testDB.GetCatalog()
			require.NoError(t, err)
			require.Len(t, after, len(before))

			for _, s := range after {
				delta := s.Price.Sub(prices[s.Symbol])
				assert.True(t, delta.Abs().LessThanOrEqual(one),
					"%s moved by %s in one refresh", s.Symbol, delta)
				prices[s.Symbol] = s.Price
			}
		}
	})

	t.Run("BumpAllPrices leaves owned positions untouched", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureSeedData())

		p := testPosition()
		p.Owner = AdminUsername
		require.NoError(t, testDB.RecordBuy(AdminUsername, decimal.NewFromInt(1000), p))

		require.NoError(t, testDB.BumpAllPrices())

		got, err := testDB.GetPosition(AdminUsername, p.Symbol)
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(got.Price))
	})
}
