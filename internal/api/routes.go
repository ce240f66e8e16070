package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Account and session
	api.HandleFunc("/register", handler.Register).Methods("POST")
	api.HandleFunc("/login", handler.Login).Methods("POST")
	api.HandleFunc("/logout", handler.Logout).Methods("POST")

	// Trading
	api.HandleFunc("/buy", handler.Buy).Methods("POST")
	api.HandleFunc("/sell", handler.Sell).Methods("POST")
	api.HandleFunc("/refresh", handler.Refresh).Methods("POST")
	api.HandleFunc("/refresh", handler.GetRefreshStatus).Methods("GET")

	// Snapshots
	api.HandleFunc("/catalog", handler.GetCatalog).Methods("GET")
	api.HandleFunc("/portfolio", handler.GetPortfolio).Methods("GET")
	api.HandleFunc("/history", handler.GetHistory).Methods("GET")
	api.HandleFunc("/history", handler.ClearHistory).Methods("DELETE")
	api.HandleFunc("/balance", handler.GetBalance).Methods("GET")
	api.HandleFunc("/balance", handler.SetBalance).Methods("PUT")

	return r
}
