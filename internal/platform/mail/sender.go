// Package mail delivers verification and welcome mails over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mail: MAIL_USERNAME or MAIL_PASSWORD is missing")

// Dialer sends composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender renders templates and hands messages to the SMTP dialer.
type Sender struct {
	cfg       Config
	dialer    Dialer
	templates *templates
}

// NewSender creates a Sender backed by a gomail SMTP dialer.
func NewSender(cfg Config) *Sender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.UseSSL
	return NewSenderWithDialer(cfg, d)
}

// NewSenderWithDialer creates a Sender using the given dialer.
func NewSenderWithDialer(cfg Config, d Dialer) *Sender {
	return &Sender{cfg: cfg, dialer: d, templates: newTemplates()}
}

// SendVerificationCode mails a verification code valid for ttl.
func (s *Sender) SendVerificationCode(ctx context.Context, to, name, code string, ttl time.Duration) error {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return s.send(ctx, to, "Verify Your Email - Resume NER Parser", templateVerification, templateData{
		Name:    name,
		Code:    code,
		Minutes: minutes,
	})
}

// SendWelcome mails the post-verification greeting.
func (s *Sender) SendWelcome(ctx context.Context, to, name string) error {
	return s.send(ctx, to, "Welcome to Resume NER Parser!", templateWelcome, templateData{
		Name:   name,
		AppURL: s.cfg.AppURL,
	})
}

func (s *Sender) send(ctx context.Context, to, subject, tmpl string, data templateData) error {
	if !s.cfg.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	html, text, err := s.templates.render(tmpl, data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		slog.Error("failed to send mail", "error", err, "template", tmpl, "to", to)
		return fmt.Errorf("failed to send %s mail: %w", tmpl, err)
	}
	slog.Info("mail sent", "template", tmpl, "to", to)
	return nil
}
