package mail

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Config holds the SMTP settings read from MAIL_* variables.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseSSL   bool
	// AppURL is linked from the welcome mail.
	AppURL string
}

// LoadConfig reads the SMTP settings from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		Host:     getenv("MAIL_SERVER", "smtp.gmail.com"),
		Username: os.Getenv("MAIL_USERNAME"),
		Password: os.Getenv("MAIL_PASSWORD"),
		From:     os.Getenv("MAIL_DEFAULT_SENDER"),
		AppURL:   getenv("MAIL_APP_URL", "http://localhost:3000"),
	}

	port, err := strconv.Atoi(getenv("MAIL_PORT", "587"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid MAIL_PORT %q", os.Getenv("MAIL_PORT"))
	}
	cfg.Port = port

	// gomail always upgrades with STARTTLS when the server offers it, so MAIL_USE_TLS is only validated.
	useTLS, err := parseBool("MAIL_USE_TLS", true)
	if err != nil {
		return Config{}, err
	}
	if cfg.UseSSL, err = parseBool("MAIL_USE_SSL", false); err != nil {
		return Config{}, err
	}
	if !useTLS && !cfg.UseSSL {
		slog.Warn("MAIL_USE_TLS=false is ignored; STARTTLS is still used when the server offers it")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return cfg, nil
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return c.Username != "" && c.Password != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
