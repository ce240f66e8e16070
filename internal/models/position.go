package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a holding of one catalog symbol, snapshotted at purchase
// time. Price stays frozen at the purchase price regardless of later
// catalog refreshes. At most one row exists per (owner, symbol);
// re-buying replaces the snapshot.
type Position struct {
	Owner       string          `json:"owner"`
	Symbol      string          `json:"symbol"`
	Company     string          `json:"company"`
	Industry    string          `json:"industry"`
	Price       decimal.Decimal `json:"price"`
	DayChange   string          `json:"day_change"`
	GainLoss    string          `json:"gain_loss"`
	PurchasedAt time.Time       `json:"purchased_at"`
}
