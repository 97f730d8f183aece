// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"

	authadapters "resume_backend/internal/feature/auth/adapters"
	authhandler "resume_backend/internal/feature/auth/transport/handler"
	authusecase "resume_backend/internal/feature/auth/usecase"
	jwtmw "resume_backend/internal/platform/jwt"
	"resume_backend/internal/platform/mail"
)

// NewAuthHandler builds the auth feature: gorm repositories, SMTP notifier and JWT generator.
func NewAuthHandler(db *gorm.DB, jwtCfg jwtmw.Config) (*authhandler.AuthHandler, error) {
	mailCfg, err := mail.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !mailCfg.Configured() {
		slog.Warn("SMTP credentials are not set; verification mails will fail")
	}

	codeTTL, err := codeTTLFromEnv()
	if err != nil {
		return nil, err
	}

	uc := authusecase.NewAuthUsecase(
		authadapters.NewUserRepository(db),
		authadapters.NewVerificationRepository(db),
		mail.NewSender(mailCfg),
		jwtmw.NewGenerator(jwtCfg.Secret, jwtCfg.Expiration),
		codeTTL,
	)
	return authhandler.NewAuthHandler(uc), nil
}

// codeTTLFromEnv reads VERIFICATION_CODE_TTL. Zero means the usecase default.
func codeTTLFromEnv() (time.Duration, error) {
	v := os.Getenv("VERIFICATION_CODE_TTL")
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid VERIFICATION_CODE_TTL %q: %w", v, err)
	}
	return d, nil
}
