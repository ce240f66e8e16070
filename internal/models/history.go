package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade action constants
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// HistoryEntry is one row of the append-only trade ledger. Rows are
// never updated; the ledger only grows, except for an explicit clear.
type HistoryEntry struct {
	ID        int             `json:"id"`
	Symbol    string          `json:"symbol"`
	Company   string          `json:"company"`
	Industry  string          `json:"industry"`
	Price     decimal.Decimal `json:"price"`
	DayChange string          `json:"day_change"`
	GainLoss  string          `json:"gain_loss"`
	Action    string          `json:"action"`
	CreatedAt time.Time       `json:"created_at"`
}
