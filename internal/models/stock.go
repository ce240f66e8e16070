package models

import "github.com/shopspring/decimal"

// CatalogStock is one row of the tradable universe. Price is the only
// field mutated after seeding; day_change and gain_loss are static
// display strings carried over from the seed data.
type CatalogStock struct {
	Symbol    string          `json:"symbol"`
	Company   string          `json:"company"`
	Industry  string          `json:"industry"`
	Price     decimal.Decimal `json:"price"`
	DayChange string          `json:"day_change"`
	GainLoss  string          `json:"gain_loss"`
}
