package view

import (
	"github.com/shopspring/decimal"

	"github.com/stoxly/stoxly/internal/models"
)

// Ledger is the read surface the adapter projects from.
type Ledger interface {
	Catalog() ([]*models.CatalogStock, error)
	Positions(username string) ([]*models.Position, error)
	History() ([]*models.HistoryEntry, error)
	Balance(username string) (decimal.Decimal, error)
}

// Table is an ordered, display-ready row grid.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Adapter shapes ledger snapshots into tables. It is a pure read
// projection: every call re-pulls from the ledger and it never mutates
// anything. Callers re-invoke it after each mutating operation and
// after each scheduler tick.
type Adapter struct {
	ledger Ledger
}

// New creates a view adapter over a ledger.
func New(ledger Ledger) *Adapter {
	return &Adapter{ledger: ledger}
}

var stockColumns = []string{"Company", "Industry", "Symbol", "Price", "Day Change", "Gain/Loss"}

// CatalogTable projects the tradable universe.
func (a *Adapter) CatalogTable() (*Table, error) {
	stocks, err := a.ledger.Catalog()
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: stockColumns, Rows: make([][]string, 0, len(stocks))}
	for _, s := range stocks {
		t.Rows = append(t.Rows, []string{
			s.Company, s.Industry, s.Symbol, s.Price.StringFixed(2), s.DayChange, s.GainLoss,
		})
	}
	return t, nil
}

// PortfolioTable projects the owner's current holdings at their frozen
// purchase prices.
func (a *Adapter) PortfolioTable(username string) (*Table, error) {
	positions, err := a.ledger.Positions(username)
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: stockColumns, Rows: make([][]string, 0, len(positions))}
	for _, p := range positions {
		t.Rows = append(t.Rows, []string{
			p.Company, p.Industry, p.Symbol, p.Price.StringFixed(2), p.DayChange, p.GainLoss,
		})
	}
	return t, nil
}

// HistoryTable projects the trade ledger, most recent first.
func (a *Adapter) HistoryTable() (*Table, error) {
	entries, err := a.ledger.History()
	if err != nil {
		return nil, err
	}

	t := &Table{
		Columns: []string{"Company", "Industry", "Symbol", "Price", "Day Change", "Gain/Loss", "Action", "Date"},
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.Company, e.Industry, e.Symbol, e.Price.StringFixed(2),
			e.DayChange, e.GainLoss, e.Action, e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return t, nil
}

// BalanceLabel renders the cash balance the way the UI displays it.
func (a *Adapter) BalanceLabel(username string) (string, error) {
	balance, err := a.ledger.Balance(username)
	if err != nil {
		return "", err
	}
	return "₱ " + balance.StringFixed(2), nil
}
