// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// A user cannot obtain an access token until IsVerified is true.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// FullName is the display name given at signup.
	FullName string `gorm:"size:100;not null"`

	// Email is the lowercased address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// IsVerified is set once the user has consumed an email verification code.
	IsVerified bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
