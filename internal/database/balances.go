package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// GetBalance retrieves the cash balance for a username. A missing row
// reads as zero rather than an error.
func (db *DB) GetBalance(username string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := db.conn.QueryRow(
		`SELECT amount FROM balances WHERE username = $1`, username,
	).Scan(&amount)

	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return amount, nil
}

// SetBalance overwrites the cash balance for a username
func (db *DB) SetBalance(username string, amount decimal.Decimal) error {
	result, err := db.conn.Exec(
		`UPDATE balances SET amount = $2 WHERE username = $1`, username, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("balance for %s: %w", username, ErrNotFound)
	}
	return nil
}
