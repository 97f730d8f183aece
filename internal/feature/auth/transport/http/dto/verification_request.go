package dto

// VerifyEmailReq represents the request body for the /auth/verify-email endpoint.
type VerifyEmailReq struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"verification_code" binding:"required,len=6,numeric"`
}

// EmailReq carries a single address, used by resend-verification and check-user-status.
type EmailReq struct {
	Email string `json:"email" binding:"required,email"`
}

// UserStatusRes describes whether an address is registered and verified.
type UserStatusRes struct {
	Exists                bool   `json:"exists"`
	Email                 string `json:"email"`
	FullName              string `json:"full_name,omitempty"`
	IsVerified            bool   `json:"is_verified"`
	CanResendVerification bool   `json:"can_resend_verification"`
}

// ErrorRes is the body of every error response.
type ErrorRes struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageRes is a plain acknowledgement.
type MessageRes struct {
	Message string `json:"message"`
}
