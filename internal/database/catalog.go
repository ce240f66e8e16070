package database

import (
	"database/sql"
	"fmt"

	"github.com/stoxly/stoxly/internal/models"
)

// GetCatalog retrieves the full tradable universe ordered by symbol
func (db *DB) GetCatalog() ([]*models.CatalogStock, error) {
	query := `
		SELECT symbol, company, industry, price, day_change, gain_loss
		FROM catalog_stocks
		ORDER BY symbol ASC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var stocks []*models.CatalogStock
	for rows.Next() {
		var s models.CatalogStock
		if err := rows.Scan(&s.Symbol, &s.Company, &s.Industry, &s.Price, &s.DayChange, &s.GainLoss); err != nil {
			return nil, fmt.Errorf("failed to scan catalog stock: %w", err)
		}
		stocks = append(stocks, &s)
	}

	return stocks, rows.Err()
}

// GetCatalogStock retrieves a single catalog row by symbol
func (db *DB) GetCatalogStock(symbol string) (*models.CatalogStock, error) {
	query := `
		SELECT symbol, company, industry, price, day_change, gain_loss
		FROM catalog_stocks
		WHERE symbol = $1
	`
	var s models.CatalogStock
	err := db.conn.QueryRow(query, symbol).Scan(
		&s.Symbol, &s.Company, &s.Industry, &s.Price, &s.DayChange, &s.GainLoss,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("catalog stock %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog stock: %w", err)
	}

	return &s, nil
}

// BumpAllPrices applies an independent uniform perturbation in
// [-1.00, +0.99] (step 0.01) to every catalog price. random() is
// volatile in PostgreSQL, so each row draws its own step.
func (db *DB) BumpAllPrices() error {
	query := `UPDATE catalog_stocks SET price = price + (floor(random() * 200) - 100) / 100.0`
	if _, err := db.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to bump catalog prices: %w", err)
	}
	return nil
}
