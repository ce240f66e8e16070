package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stoxly/stoxly/internal/models"
)

// RecordBuy applies a purchase as one transaction: set the debited
// balance, upsert the owned position (a re-buy replaces the prior
// snapshot, keeping exactly one row per owner and symbol), and append
// a BUY row to the ledger. Either all three land or none do.
func (db *DB) RecordBuy(username string, newBalance decimal.Decimal, p *models.Position) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE balances SET amount = $2 WHERE username = $1`,
		username, newBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return fmt.Errorf("balance for %s: %w", username, ErrNotFound)
	}

	_, err = tx.Exec(`
		INSERT INTO owned_positions (owner, symbol, company, industry, price, day_change, gain_loss)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner, symbol) DO UPDATE SET
			company = EXCLUDED.company,
			industry = EXCLUDED.industry,
			price = EXCLUDED.price,
			day_change = EXCLUDED.day_change,
			gain_loss = EXCLUDED.gain_loss,
			purchased_at = NOW()
	`, p.Owner, p.Symbol, p.Company, p.Industry, p.Price, p.DayChange, p.GainLoss)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO history (symbol, company, industry, price, day_change, gain_loss, action)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.Symbol, p.Company, p.Industry, p.Price, p.DayChange, p.GainLoss, models.ActionBuy)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecordSell applies a liquidation as one transaction: set the
// credited balance, delete the owned position, and append a SELL row
// to the ledger.
func (db *DB) RecordSell(username string, newBalance decimal.Decimal, p *models.Position) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE balances SET amount = $2 WHERE username = $1`,
		username, newBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return fmt.Errorf("balance for %s: %w", username, ErrNotFound)
	}

	result, err = tx.Exec(
		`DELETE FROM owned_positions WHERE owner = $1 AND symbol = $2`,
		p.Owner, p.Symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return fmt.Errorf("position %s/%s: %w", p.Owner, p.Symbol, ErrNotFound)
	}

	_, err = tx.Exec(`
		INSERT INTO history (symbol, company, industry, price, day_change, gain_loss, action)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.Symbol, p.Company, p.Industry, p.Price, p.DayChange, p.GainLoss, models.ActionSell)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
