package models

import "time"

// Account represents a registered user. Passwords are stored as bcrypt
// hashes, never as plaintext.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
