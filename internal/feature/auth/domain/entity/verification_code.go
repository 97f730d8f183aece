package entity

import "time"

// PurposeEmailVerification marks codes that confirm ownership of an email address.
const PurposeEmailVerification = "email_verification"

// VerificationCode is a short-lived code mailed to a user.
// Only the SHA-256 hash of the code is stored.
type VerificationCode struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index:idx_verification_user_purpose,priority:1"`
	User      *User      `gorm:"constraint:OnUpdate:CASCADE" json:"-"`
	Purpose   string     `gorm:"size:32;not null;index:idx_verification_user_purpose,priority:2"`
	CodeHash  string     `gorm:"size:64;not null"`
	ExpiresAt time.Time  `gorm:"not null"`
	UsedAt    *time.Time // nil while the code is still unused
	CreatedAt time.Time
}

// IsExpired reports whether the code has passed its expiry at the given instant.
func (c *VerificationCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// IsUsed reports whether the code has been consumed or superseded.
func (c *VerificationCode) IsUsed() bool {
	return c.UsedAt != nil
}
