// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume_backend/internal/feature/auth/domain/entity"
	"resume_backend/internal/feature/auth/transport/http/dto"
	"resume_backend/internal/feature/auth/usecase"
	jwtmw "resume_backend/internal/platform/jwt"
	"resume_backend/internal/platform/validation"
)

// AuthUsecase defines the auth operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, fullName, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	VerifyEmail(ctx context.Context, email, code string) (string, *entity.User, error)
	ResendVerification(ctx context.Context, email string) error
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	UserStatus(ctx context.Context, email string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup registers a user and mails a verification code.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if !bind(c, &req, "signup") {
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupRes{
		Message:              "User created successfully",
		UserID:               user.ID,
		Email:                user.Email,
		VerificationRequired: true,
	})
}

// Login authenticates a verified user and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if !bind(c, &req, "login") {
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, usecase.ErrUnverified) {
		slog.Info("login by unverified user", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, dto.UnverifiedRes{
			Error:                "please verify your email before logging in; a new verification code has been sent",
			Email:                req.Email,
			VerificationRequired: true,
		})
		return
	}
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: token, User: dto.NewUserRes(user)})
}

// VerifyEmail consumes a verification code and returns an access token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailReq
	if !bind(c, &req, "verify email") {
		return
	}

	token, user, err := h.auth.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		slog.Warn("email verification failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("email verified", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{Token: token, User: dto.NewUserRes(user)})
}

// ResendVerification issues a new code and invalidates previous ones.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.EmailReq
	if !bind(c, &req, "resend verification") {
		return
	}

	if err := h.auth.ResendVerification(c.Request.Context(), req.Email); err != nil {
		slog.Warn("resend verification failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Verification code sent"})
}

// CheckUserStatus reports whether an address is registered and verified.
func (h *AuthHandler) CheckUserStatus(c *gin.Context) {
	var req dto.EmailReq
	if !bind(c, &req, "check user status") {
		return
	}

	user, err := h.auth.UserStatus(c.Request.Context(), req.Email)
	if errors.Is(err, usecase.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, dto.UserStatusRes{Exists: false, Email: req.Email})
		return
	}
	if err != nil {
		slog.Error("check user status failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserStatusRes{
		Exists:                true,
		Email:                 user.Email,
		FullName:              user.FullName,
		IsVerified:            user.IsVerified,
		CanResendVerification: !user.IsVerified,
	})
}

// Profile returns the authenticated user.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthorized"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		slog.Warn("profile lookup failed", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserRes(user)})
}

// bind decodes the JSON body into req and writes a 400 on failure.
func bind(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request", Fields: validation.Messages(err)})
		return false
	}
	return true
}

// writeError maps usecase errors to status codes.
func writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	c.JSON(status, dto.ErrorRes{Error: msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrDuplicateUser):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, usecase.ErrUnverified):
		return http.StatusForbidden, "email not verified"
	case errors.Is(err, usecase.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrInvalidCode):
		return http.StatusBadRequest, "invalid verification code"
	case errors.Is(err, usecase.ErrExpiredCode):
		return http.StatusBadRequest, "verification code has expired"
	case errors.Is(err, usecase.ErrAlreadyVerified):
		return http.StatusBadRequest, "email already verified"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, usecase.ErrNotificationFailed):
		return http.StatusBadGateway, "failed to send verification email; request a new code"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
