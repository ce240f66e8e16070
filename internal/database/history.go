package database

import (
	"fmt"

	"github.com/stoxly/stoxly/internal/models"
)

// GetHistory retrieves the full trade ledger, most recent first
func (db *DB) GetHistory() ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, symbol, company, industry, price, day_change, gain_loss, action, created_at
		FROM history
		ORDER BY id DESC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		err := rows.Scan(
			&e.ID, &e.Symbol, &e.Company, &e.Industry,
			&e.Price, &e.DayChange, &e.GainLoss, &e.Action, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// ClearHistory deletes all ledger rows. Irreversible.
func (db *DB) ClearHistory() error {
	if _, err := db.conn.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
