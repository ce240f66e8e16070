package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stoxly/stoxly/internal/database"
	"github.com/stoxly/stoxly/internal/models"
)

// DefaultEndowment is the starting cash balance granted on
// registration. A tenth of the admin seed balance.
var DefaultEndowment = decimal.NewFromInt(10000)

// Store is the persistence surface the ledger runs on. *database.DB
// implements it; tests substitute an in-memory fake.
type Store interface {
	GetCatalog() ([]*models.CatalogStock, error)
	GetCatalogStock(symbol string) (*models.CatalogStock, error)
	BumpAllPrices() error

	GetPositions(owner string) ([]*models.Position, error)
	GetPosition(owner, symbol string) (*models.Position, error)

	GetHistory() ([]*models.HistoryEntry, error)
	ClearHistory() error

	GetBalance(username string) (decimal.Decimal, error)
	SetBalance(username string, amount decimal.Decimal) error

	CreateAccount(username, passwordHash string, startingBalance decimal.Decimal) error
	GetPasswordHash(username string) (string, error)

	RecordBuy(username string, newBalance decimal.Decimal, p *models.Position) error
	RecordSell(username string, newBalance decimal.Decimal, p *models.Position) error
}

// Publisher emits ledger events for external observers. May be nil.
type Publisher interface {
	PublishTradeExecuted(ctx context.Context, owner string, p *models.Position, action string) error
	PublishPricesRefreshed(ctx context.Context) error
}

// Service enforces the trading invariants on top of the store. It
// holds no state between calls; the store is the single source of
// truth.
type Service struct {
	store  Store
	events Publisher
	log    *zap.Logger
}

// New creates a ledger service. events may be nil when no broker is
// configured.
func New(store Store, events Publisher, log *zap.Logger) *Service {
	return &Service{store: store, events: events, log: log}
}

// TradeResult carries the post-trade state a caller needs to redraw.
type TradeResult struct {
	Balance   decimal.Decimal    `json:"balance"`
	Positions []*models.Position `json:"positions"`
}

// Buy purchases one whole position of symbol at the current catalog
// price. The price is frozen into the owned position; re-buying an
// already-owned symbol replaces the prior snapshot.
func (s *Service) Buy(ctx context.Context, username, symbol string) (*TradeResult, error) {
	stock, err := s.store.GetCatalogStock(symbol)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("buy %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	balance, err := s.store.GetBalance(username)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(stock.Price) {
		return nil, fmt.Errorf("buy %s at %s with balance %s: %w",
			symbol, stock.Price, balance, ErrInsufficientFunds)
	}

	position := &models.Position{
		Owner:     username,
		Symbol:    stock.Symbol,
		Company:   stock.Company,
		Industry:  stock.Industry,
		Price:     stock.Price,
		DayChange: stock.DayChange,
		GainLoss:  stock.GainLoss,
	}
	if err := s.store.RecordBuy(username, balance.Sub(stock.Price), position); err != nil {
		return nil, err
	}

	s.log.Info("position bought",
		zap.String("username", username),
		zap.String("symbol", symbol),
		zap.String("price", stock.Price.String()),
	)
	s.publishTrade(ctx, username, position, models.ActionBuy)

	return s.tradeResult(username)
}

// Sell liquidates the owned position for symbol at its frozen
// purchase price, crediting the balance by exactly what the buy
// debited.
func (s *Service) Sell(ctx context.Context, username, symbol string) (*TradeResult, error) {
	position, err := s.store.GetPosition(username, symbol)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("sell %s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	balance, err := s.store.GetBalance(username)
	if err != nil {
		return nil, err
	}

	if err := s.store.RecordSell(username, balance.Add(position.Price), position); err != nil {
		return nil, err
	}

	s.log.Info("position sold",
		zap.String("username", username),
		zap.String("symbol", symbol),
		zap.String("price", position.Price.String()),
	)
	s.publishTrade(ctx, username, position, models.ActionSell)

	return s.tradeResult(username)
}

// RefreshPrices perturbs every catalog price by a bounded random step.
// Owned-position prices stay frozen; this is the system's only source
// of price movement.
func (s *Service) RefreshPrices(ctx context.Context) error {
	if err := s.store.BumpAllPrices(); err != nil {
		return err
	}

	s.log.Debug("catalog prices refreshed")
	if s.events != nil {
		if err := s.events.PublishPricesRefreshed(ctx); err != nil {
			s.log.Warn("failed to publish refresh event", zap.Error(err))
		}
	}
	return nil
}

// Register creates an account with the default endowment.
func (s *Service) Register(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("register: %w", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.store.CreateAccount(username, string(hash), DefaultEndowment)
	if errors.Is(err, database.ErrDuplicate) {
		return fmt.Errorf("register %s: %w", username, ErrConflict)
	}
	if err != nil {
		return err
	}

	s.log.Info("account registered", zap.String("username", username))
	return nil
}

// Login verifies credentials. Wrong username or password yields
// (false, nil); errors are reserved for invalid input and store
// faults.
func (s *Service) Login(username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("login: %w", ErrInvalidInput)
	}

	hash, err := s.store.GetPasswordHash(username)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// Balance reads the cash balance; missing accounts read as zero.
func (s *Service) Balance(username string) (decimal.Decimal, error) {
	return s.store.GetBalance(username)
}

// SetBalance overwrites the cash balance. No validation of negative
// amounts, matching the store's documented model.
func (s *Service) SetBalance(username string, amount decimal.Decimal) error {
	return s.store.SetBalance(username, amount)
}

// Catalog returns the current tradable universe.
func (s *Service) Catalog() ([]*models.CatalogStock, error) {
	return s.store.GetCatalog()
}

// Positions returns the owner's current holdings.
func (s *Service) Positions(username string) ([]*models.Position, error) {
	return s.store.GetPositions(username)
}

// History returns the trade ledger, most recent first.
func (s *Service) History() ([]*models.HistoryEntry, error) {
	return s.store.GetHistory()
}

// ClearHistory wipes the trade ledger. Irreversible.
func (s *Service) ClearHistory() error {
	return s.store.ClearHistory()
}

func (s *Service) tradeResult(username string) (*TradeResult, error) {
	balance, err := s.store.GetBalance(username)
	if err != nil {
		return nil, err
	}
	positions, err := s.store.GetPositions(username)
	if err != nil {
		return nil, err
	}
	return &TradeResult{Balance: balance, Positions: positions}, nil
}

func (s *Service) publishTrade(ctx context.Context, username string, p *models.Position, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTradeExecuted(ctx, username, p, action); err != nil {
		s.log.Warn("failed to publish trade event",
			zap.String("symbol", p.Symbol),
			zap.Error(err),
		)
	}
}
