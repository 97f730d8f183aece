// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when attempting to create a user with an email that already exists.
	ErrDuplicateUser = errors.New("user with this email already exists")

	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnverified is returned when an unverified user tries to log in.
	ErrUnverified = errors.New("email address has not been verified")

	// ErrAlreadyVerified is returned when verification is requested for a verified user.
	ErrAlreadyVerified = errors.New("user is already verified")

	// ErrInvalidCode is returned when no unused code matches the submitted value.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrExpiredCode is returned when the matching code is past its expiry.
	ErrExpiredCode = errors.New("verification code has expired")

	// ErrWeakPassword is returned when a password does not meet the strength rules.
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrNotificationFailed is returned when a required mail could not be delivered.
	ErrNotificationFailed = errors.New("failed to send notification")

	// ErrCodeNotFound is returned by repositories when no code matches a lookup.
	ErrCodeNotFound = errors.New("verification code not found")

	// ErrCodeAlreadyUsed is returned by repositories when a consume races with another consume.
	ErrCodeAlreadyUsed = errors.New("verification code already used")
)
