package models

import "time"

// User is a registered account. Email and username are globally unique.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash

	// ResetToken is set only between a forgot-password request and its
	// consumption (or expiry); nil otherwise. Single slot: a new request
	// overwrites any prior token.
	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
}
