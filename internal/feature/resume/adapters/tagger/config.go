package tagger

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"resume_backend/internal/feature/resume/usecase"
	"resume_backend/internal/shared/ratelimiter"
)

// Supported tagger backends.
const (
	BackendRemote  = "remote"
	BackendGemini  = "gemini"
	BackendKeyword = "keyword"
)

// Config selects and configures the tagger backend.
type Config struct {
	Backend     string
	URL         string
	Timeout     time.Duration
	GeminiModel string
	// GeminiRPM caps Gemini requests per minute. Zero disables throttling.
	GeminiRPM int
}

// LoadConfig reads TAGGER_BACKEND, TAGGER_URL, TAGGER_TIMEOUT, GEMINI_MODEL and GEMINI_RPM.
func LoadConfig() (Config, error) {
	cfg := Config{
		Backend:     strings.ToLower(strings.TrimSpace(os.Getenv("TAGGER_BACKEND"))),
		URL:         os.Getenv("TAGGER_URL"),
		Timeout:     DefaultTimeout,
		GeminiModel: os.Getenv("GEMINI_MODEL"),
		GeminiRPM:   10,
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendRemote
	}
	if v := os.Getenv("TAGGER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TAGGER_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("GEMINI_RPM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GEMINI_RPM %q: %w", v, err)
		}
		cfg.GeminiRPM = n
	}
	return cfg, nil
}

// New builds the tagger selected by cfg.Backend.
func New(ctx context.Context, cfg Config) (usecase.Tagger, error) {
	switch cfg.Backend {
	case BackendRemote:
		return NewRemoteTagger(cfg.URL, cfg.Timeout)
	case BackendGemini:
		return NewGeminiTagger(ctx, cfg.GeminiModel, ratelimiter.NewRateLimiter(cfg.GeminiRPM, time.Minute))
	case BackendKeyword:
		return KeywordTagger{}, nil
	default:
		return nil, fmt.Errorf("unknown TAGGER_BACKEND %q", cfg.Backend)
	}
}
