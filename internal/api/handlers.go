package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stoxly/stoxly/internal/ledger"
	"github.com/stoxly/stoxly/internal/session"
	"github.com/stoxly/stoxly/internal/view"
)

// Ledger is the slice of the ledger service the handlers drive.
type Ledger interface {
	Buy(ctx context.Context, username, symbol string) (*ledger.TradeResult, error)
	Sell(ctx context.Context, username, symbol string) (*ledger.TradeResult, error)
	RefreshPrices(ctx context.Context) error
	Register(username, password string) error
	Login(username, password string) (bool, error)
	SetBalance(username string, amount decimal.Decimal) error
	ClearHistory() error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ledger   Ledger
	views    *view.Adapter
	sessions *session.Manager
	log      *zap.Logger

	// reloads counts completed price refreshes, scheduled and manual.
	// Snapshot pollers watch it to know when to re-pull.
	reloads atomic.Int64
}

// NewHandler creates a new Handler
func NewHandler(ledger Ledger, views *view.Adapter, sessions *session.Manager, log *zap.Logger) *Handler {
	return &Handler{
		ledger:   ledger,
		views:    views,
		sessions: sessions,
		log:      log,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tradeRequest struct {
	Username string `json:"username"`
	Symbol   string `json:"symbol"`
}

// Login handles POST /login: verifies credentials and opens the
// session, which starts the refresh scheduler.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ok, err := h.ledger.Login(req.Username, req.Password)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	s := h.sessions.Open(req.Username)
	respondJSON(w, http.StatusOK, map[string]string{
		"session_id": s.ID,
		"username":   s.Username,
	})
}

// Logout handles POST /logout: closes the session, stopping its
// scheduler deterministically.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Close()
	w.WriteHeader(http.StatusNoContent)
}

// Register handles POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ledger.Register(req.Username, req.Password); err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

// Buy handles POST /buy
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.ledger.Buy)
}

// Sell handles POST /sell
func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.ledger.Sell)
}

func (h *Handler) trade(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, username, symbol string) (*ledger.TradeResult, error)) {

	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	username := h.resolveUsername(req.Username)
	if username == "" || req.Symbol == "" {
		respondError(w, http.StatusBadRequest, "username and symbol are required")
		return
	}

	result, err := op(r.Context(), username, req.Symbol)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Refresh handles POST /refresh, the manual refresh button. It runs
// the same operation as a scheduler tick.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.RefreshPrices(r.Context()); err != nil {
		respondLedgerError(w, err)
		return
	}
	h.NotifyRefresh()
	w.WriteHeader(http.StatusNoContent)
}

// NotifyRefresh advances the reload counter. Registered as the
// session scheduler's tick observer.
func (h *Handler) NotifyRefresh() {
	h.reloads.Add(1)
}

// GetRefreshStatus handles GET /refresh. Clients poll it and re-pull
// their snapshots whenever the counter moves.
func (h *Handler) GetRefreshStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int64{"reloads": h.reloads.Load()})
}

// GetCatalog handles GET /catalog
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	table, err := h.views.CatalogTable()
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// GetPortfolio handles GET /portfolio
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	username := h.resolveUsername(r.URL.Query().Get("username"))
	if username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}

	table, err := h.views.PortfolioTable(username)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// GetHistory handles GET /history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	table, err := h.views.HistoryTable()
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// ClearHistory handles DELETE /history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.ClearHistory(); err != nil {
		respondLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBalance handles GET /balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	username := h.resolveUsername(r.URL.Query().Get("username"))
	if username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}

	label, err := h.views.BalanceLabel(username)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"username": username, "balance": label})
}

// SetBalance handles PUT /balance
func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string          `json:"username"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}

	if err := h.ledger.SetBalance(req.Username, req.Amount); err != nil {
		respondLedgerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// resolveUsername falls back to the active session's user when the
// request does not name one.
func (h *Handler) resolveUsername(username string) string {
	if username != "" {
		return username
	}
	if s := h.sessions.Active(); s != nil {
		return s.Username
	}
	return ""
}

func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
