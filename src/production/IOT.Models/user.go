package iotmodels

import "time"

// User represents a registered account
type User struct {
	UserID       string    `json:"user_id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // digest is never exposed in JSON
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
