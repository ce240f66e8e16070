package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("CreateAccount stores the hash and the starting balance", func(t *testing.T) {
		testDB.TruncateAll(t)

		err := testDB.CreateAccount("alice", "$2a$10$fakehash", decimal.NewFromInt(10000))
		require.NoError(t, err)

		hash, err := testDB.GetPasswordHash("alice")
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$fakehash", hash)

		balance, err := testDB.GetBalance("alice")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10000).Equal(balance))
	})

	t.Run("CreateAccount rejects a duplicate username", func(t *testing.T) {
		testDB.TruncateAll(t)

		require.NoError(t, testDB.CreateAccount("alice", "h1", decimal.NewFromInt(10000)))

		err := testDB.CreateAccount("alice", "h2", decimal.NewFromInt(10000))
		require.ErrorIs(t, err, ErrDuplicate)

		// The original hash survives the failed attempt.
		hash, err := testDB.GetPasswordHash("alice")
		require.NoError(t, err)
		assert.Equal(t, "h1", hash)
	})

	t.Run("GetPasswordHash returns NotFound for unknown user", func(t *testing.T) {
		testDB.TruncateAll(t)

		_, err := testDB.GetPasswordHash("ghost")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBalancesRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("GetBalance reads zero for a missing row", func(t *testing.T) {
		testDB.TruncateAll(t)

		balance, err := testDB.GetBalance("ghost")
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("SetBalance updates an existing row", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.CreateAccount("alice", "h", decimal.NewFromInt(10000)))

		require.NoError(t, testDB.SetBalance("alice", decimal.RequireFromString("9821.77")))

		balance, err := testDB.GetBalance("alice")
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("9821.77").Equal(balance))
	})

	t.Run("SetBalance fails with NotFound for a missing row", func(t *testing.T) {
		testDB.TruncateAll(t)

		err := testDB.SetBalance("ghost", decimal.NewFromInt(1))
		require.ErrorIs(t, err, ErrNotFound)
	})
}
