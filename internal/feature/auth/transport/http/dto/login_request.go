package dto

import (
	"time"

	"resume_backend/internal/feature/auth/domain/entity"
)

// LoginReq represents the request body for the /auth/login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserRes is the public view of a user.
type UserRes struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserRes converts a user entity, dropping the password hash.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// TokenRes is returned by login and email verification.
type TokenRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// UnverifiedRes is returned with 403 when an unverified user logs in.
type UnverifiedRes struct {
	Error                string `json:"error"`
	Email                string `json:"email"`
	VerificationRequired bool   `json:"verification_required"`
}
