package database

import (
	"database/sql"
	"fmt"

	"github.com/stoxly/stoxly/internal/models"
)

// GetPositions retrieves all owned positions for one owner, most
// recently purchased first
func (db *DB) GetPositions(owner string) ([]*models.Position, error) {
	query := `
		SELECT owner, symbol, company, industry, price, day_change, gain_loss, purchased_at
		FROM owned_positions
		WHERE owner = $1
		ORDER BY purchased_at DESC, symbol ASC
	`
	rows, err := db.conn.Query(query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		var p models.Position
		err := rows.Scan(
			&p.Owner, &p.Symbol, &p.Company, &p.Industry,
			&p.Price, &p.DayChange, &p.GainLoss, &p.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, &p)
	}

	return positions, rows.Err()
}

// GetPosition retrieves one owned position by owner and symbol
func (db *DB) GetPosition(owner, symbol string) (*models.Position, error) {
	query := `
		SELECT owner, symbol, company, industry, price, day_change, gain_loss, purchased_at
		FROM owned_positions
		WHERE owner = $1 AND symbol = $2
	`
	var p models.Position
	err := db.conn.QueryRow(query, owner, symbol).Scan(
		&p.Owner, &p.Symbol, &p.Company, &p.Industry,
		&p.Price, &p.DayChange, &p.GainLoss, &p.PurchasedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("position %s/%s: %w", owner, symbol, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	return &p, nil
}
