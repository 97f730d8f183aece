package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resume_backend/internal/feature/auth/domain/entity"
	"resume_backend/internal/platform/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCodeTTL is how long a verification code stays valid.
	DefaultCodeTTL = 3 * time.Minute

	// dummyHash keeps Login's bcrypt comparison running for unknown emails.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrDuplicateUser if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// VerificationRepository stores verification codes.
type VerificationRepository interface {
	// Issue marks every unused code of the same user and purpose as used, then stores code.
	Issue(ctx context.Context, code *entity.VerificationCode) error

	// FindByHash returns the most recent code with the given hash, or ErrCodeNotFound.
	FindByHash(ctx context.Context, userID uint, purpose, codeHash string) (*entity.VerificationCode, error)

	// Consume marks the code used and the owning user verified in one transaction.
	// It returns ErrCodeAlreadyUsed when the code was consumed concurrently.
	Consume(ctx context.Context, code *entity.VerificationCode) error
}

// Notifier delivers transactional mails.
type Notifier interface {
	SendVerificationCode(ctx context.Context, to, name, code string, ttl time.Duration) error
	SendWelcome(ctx context.Context, to, name string) error
}

// JWTGenerator defines the interface for JWT token generation.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/jwt).
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserRepository
	codes        VerificationRepository
	notifier     Notifier
	jwtGenerator JWTGenerator
	codeTTL      time.Duration

	now          func() time.Time
	generateCode func() (string, error)
}

// NewAuthUsecase creates a new authUsecase. A non-positive codeTTL falls back to DefaultCodeTTL.
func NewAuthUsecase(users UserRepository, codes VerificationRepository, notifier Notifier, jwtGenerator JWTGenerator, codeTTL time.Duration) *authUsecase {
	if codeTTL <= 0 {
		codeTTL = DefaultCodeTTL
	}
	return &authUsecase{
		users:        users,
		codes:        codes,
		notifier:     notifier,
		jwtGenerator: jwtGenerator,
		codeTTL:      codeTTL,
		now:          time.Now,
		generateCode: generateNumericCode,
	}
}

// normalizeEmail trims and lowercases an address so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword checks that a password meets the strength requirements.
func validatePassword(password string) error {
	if err := validation.CheckPassword(password); err != nil {
		return fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}
	return nil
}

// Signup registers an unverified user and mails a verification code.
// When the mail cannot be sent the user and code are kept and ErrNotificationFailed is returned.
func (u *authUsecase) Signup(ctx context.Context, fullName, email, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		FullName: strings.TrimSpace(fullName),
		Email:    normalizeEmail(email),
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.sendNewCode(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

// Login authenticates a verified user and returns a signed token.
// The bcrypt comparison always runs so unknown emails take as long as wrong passwords.
// An unverified user receives a fresh code (best effort) and ErrUnverified.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		if sendErr := u.sendNewCode(ctx, user); sendErr != nil {
			slog.Warn("failed to reissue verification code on login", "error", sendErr, "user_id", user.ID)
		}
		return "", nil, ErrUnverified
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// VerifyEmail consumes a matching unused code, marks the user verified and returns a token.
func (u *authUsecase) VerifyEmail(ctx context.Context, email, code string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}

	vc, err := u.codes.FindByHash(ctx, user.ID, entity.PurposeEmailVerification, hashCode(strings.TrimSpace(code)))
	if err != nil && !errors.Is(err, ErrCodeNotFound) {
		return "", nil, err
	}
	// A consumed code stays invalid even after the user is verified.
	if vc != nil && vc.IsUsed() {
		return "", nil, ErrInvalidCode
	}
	if user.IsVerified {
		return "", nil, ErrAlreadyVerified
	}
	if vc == nil {
		return "", nil, ErrInvalidCode
	}
	if vc.IsExpired(u.now()) {
		return "", nil, ErrExpiredCode
	}

	if err := u.codes.Consume(ctx, vc); err != nil {
		if errors.Is(err, ErrCodeAlreadyUsed) {
			return "", nil, ErrInvalidCode
		}
		return "", nil, err
	}
	user.IsVerified = true

	if err := u.notifier.SendWelcome(ctx, user.Email, user.FullName); err != nil {
		slog.Warn("failed to send welcome mail", "error", err, "user_id", user.ID)
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// ResendVerification issues a new code for an unverified user, invalidating previous ones.
func (u *authUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	return u.sendNewCode(ctx, user)
}

// Profile returns the user with the given ID.
func (u *authUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UserStatus returns the user registered under email, or ErrUserNotFound.
func (u *authUsecase) UserStatus(ctx context.Context, email string) (*entity.User, error) {
	return u.users.FindByEmail(ctx, normalizeEmail(email))
}

// sendNewCode stores a fresh code for the user and mails the plaintext value.
func (u *authUsecase) sendNewCode(ctx context.Context, user *entity.User) error {
	code, err := u.generateCode()
	if err != nil {
		return err
	}
	vc := &entity.VerificationCode{
		UserID:    user.ID,
		Purpose:   entity.PurposeEmailVerification,
		CodeHash:  hashCode(code),
		ExpiresAt: u.now().Add(u.codeTTL),
	}
	if err := u.codes.Issue(ctx, vc); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	if err := u.notifier.SendVerificationCode(ctx, user.Email, user.FullName, code, u.codeTTL); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	return nil
}
