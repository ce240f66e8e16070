package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/stoxly/stoxly/internal/models"
)

// Default admin credentials seeded at startup.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

// AdminSeedBalance is the admin's starting cash endowment.
var AdminSeedBalance = decimal.NewFromInt(100000)

// seedCatalog is the fixed tradable universe. day_change and gain_loss
// are cosmetic strings; only price ever moves after seeding.
var seedCatalog = []models.CatalogStock{
	{Symbol: "AAPL", Company: "Apple Inc.", Industry: "Technology", Price: decimal.RequireFromString("178.23"), DayChange: "+1.45%", GainLoss: "+$230"},
	{Symbol: "MSFT", Company: "Microsoft Corp.", Industry: "Technology", Price: decimal.RequireFromString("319.60"), DayChange: "-0.22%", GainLoss: "-$45"},
	{Symbol: "TSLA", Company: "Tesla Inc.", Industry: "Automotive", Price: decimal.RequireFromString("251.12"), DayChange: "+2.10%", GainLoss: "+$520"},
	{Symbol: "KO", Company: "Coca-Cola Co.", Industry: "Beverage", Price: decimal.RequireFromString("58.43"), DayChange: "+0.12%", GainLoss: "+$15"},
	{Symbol: "JPM", Company: "JPMorgan Chase", Industry: "Finance", Price: decimal.RequireFromString("144.56"), DayChange: "-0.35%", GainLoss: "-$90"},
	{Symbol: "AMZN", Company: "Amazon.com Inc.", Industry: "E-commerce", Price: decimal.RequireFromString("132.87"), DayChange: "+0.89%", GainLoss: "+$340"},
}

// EnsureSeedData makes the store usable: the admin account and its
// balance are inserted if absent, and the catalog is wiped and
// reseeded unconditionally, discarding any price drift from earlier
// refresh runs. Safe to call on every startup.
func (db *DB) EnsureSeedData() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO accounts (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, AdminUsername, string(hash))
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO balances (username, amount)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, AdminUsername, AdminSeedBalance)
	if err != nil {
		return fmt.Errorf("failed to seed admin balance: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM catalog_stocks`); err != nil {
		return fmt.Errorf("failed to reset catalog: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO catalog_stocks (symbol, company, industry, price, day_change, gain_loss)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare catalog insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range seedCatalog {
		if _, err := stmt.Exec(s.Symbol, s.Company, s.Industry, s.Price, s.DayChange, s.GainLoss); err != nil {
			return fmt.Errorf("failed to seed catalog stock %s: %w", s.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
