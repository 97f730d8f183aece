// Package jwtmw issues HS256 access tokens and guards routes with them.
package jwtmw

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyJWTSecret names the variable holding the signing secret.
	EnvKeyJWTSecret = "JWT_SECRET_KEY"
	// EnvKeyJWTExpires names the variable holding the token lifetime.
	EnvKeyJWTExpires = "JWT_EXPIRES"

	defaultExpiration = time.Hour
)

// Config holds the signing secret and token lifetime.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig reads JWT_SECRET_KEY and JWT_EXPIRES.
// JWT_EXPIRES accepts a Go duration ("90m") or a number of seconds ("3600").
func LoadConfig() (Config, error) {
	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		return Config{}, fmt.Errorf("%s is not set", EnvKeyJWTSecret)
	}
	exp, err := parseExpiration(os.Getenv(EnvKeyJWTExpires))
	if err != nil {
		return Config{}, err
	}
	return Config{Secret: secret, Expiration: exp}, nil
}

func parseExpiration(raw string) (time.Duration, error) {
	if raw == "" {
		return defaultExpiration, nil
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d, nil
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("invalid %s %q", EnvKeyJWTExpires, raw)
	}
	return time.Duration(secs) * time.Second, nil
}

// generator signs tokens with a shared HMAC secret.
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT token with standard claims.
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
