package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CreateAccount inserts a new account together with its starting
// balance in a single transaction. Returns ErrDuplicate if the
// username is already taken.
func (db *DB) CreateAccount(username, passwordHash string, startingBalance decimal.Decimal) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO accounts (username, password_hash) VALUES ($1, $2)`,
		username, passwordHash,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("account %s: %w", username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO balances (username, amount) VALUES ($1, $2)`,
		username, startingBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to create balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPasswordHash retrieves the stored password hash for a username
func (db *DB) GetPasswordHash(username string) (string, error) {
	var hash string
	err := db.conn.QueryRow(
		`SELECT password_hash FROM accounts WHERE username = $1`, username,
	).Scan(&hash)

	if err == sql.ErrNoRows {
		return "", fmt.Errorf("account %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get password hash: %w", err)
	}

	return hash, nil
}
