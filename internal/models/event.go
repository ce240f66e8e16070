package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTradeExecuted   = "TRADE_EXECUTED"
	EventPricesRefreshed = "PRICES_REFRESHED"
)

// LedgerEvent is published to Kafka whenever the ledger mutates state
// that observers may want to react to.
type LedgerEvent struct {
	EventType string          `json:"event_type"`
	Owner     string          `json:"owner,omitempty"`
	Symbol    string          `json:"symbol,omitempty"`
	Action    string          `json:"action,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
