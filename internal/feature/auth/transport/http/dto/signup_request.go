// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /auth/signup endpoint.
type SignupReq struct {
	FullName        string `json:"full_name" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,strongpassword"`
	ConfirmPassword string `json:"confirm_password" binding:"omitempty,eqfield=Password"`
}

// SignupRes is returned with 201 after registration.
type SignupRes struct {
	Message              string `json:"message"`
	UserID               uint   `json:"user_id"`
	Email                string `json:"email"`
	VerificationRequired bool   `json:"verification_required"`
}
