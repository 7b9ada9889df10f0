// Package mailer implements the notification relay: after a submission is
// durably stored, an administrator notification and a submitter acknowledgment
// are sent over SMTP. Sends are best-effort; failures are logged and counted
// but never change the outcome of the submission itself.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/printlab/quote-api/config"
	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/pkg/logger"
	"github.com/printlab/quote-api/pkg/metrics"
)

const (
	gmailHost = "smtp.gmail.com"
	gmailPort = 587
)

// Mailer sends the two fixed notification messages over SMTP.
// The provider variant (gmail vs. generic host/port) is resolved once at
// construction into a single dialer.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	adminTo string
}

// New resolves the mail configuration into a Mailer. Call only when
// cfg.Enabled() is true.
func New(cfg config.MailConfig) (*Mailer, error) {
	host := cfg.Host
	port := cfg.Port
	ssl := cfg.SSL

	switch cfg.Provider {
	case config.MailProviderGmail:
		host = gmailHost
		port = gmailPort
		ssl = false // Gmail on 587 uses STARTTLS
	case config.MailProviderGeneric:
		if host == "" {
			return nil, fmt.Errorf("SMTP host is required for the generic mail provider")
		}
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}

	dialer := gomail.NewDialer(host, port, cfg.Username, cfg.Password)
	dialer.SSL = ssl

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	adminTo := cfg.AdminTo
	if adminTo == "" {
		adminTo = cfg.Username
	}

	logger.Info("Mail relay initialized",
		zap.String("provider", cfg.Provider),
		zap.String("host", host),
		zap.Int("port", port),
	)

	return &Mailer{
		dialer:  dialer,
		from:    from,
		adminTo: adminTo,
	}, nil
}

// SendAdminNotification sends the full submission to the administrator.
func (m *Mailer) SendAdminNotification(ctx context.Context, sub *models.Submission) error {
	body, err := renderTemplate(adminTemplate, sub)
	if err != nil {
		m.count("admin", "error")
		return fmt.Errorf("failed to render admin notification: %w", err)
	}

	if err := m.send(m.adminTo, "New quote request", body); err != nil {
		m.count("admin", "error")
		return fmt.Errorf("failed to send admin notification: %w", err)
	}

	m.count("admin", "success")
	return nil
}

// SendAcknowledgment confirms receipt to the submitter's own address.
func (m *Mailer) SendAcknowledgment(ctx context.Context, sub *models.Submission) error {
	body, err := renderTemplate(ackTemplate, sub)
	if err != nil {
		m.count("acknowledgment", "error")
		return fmt.Errorf("failed to render acknowledgment: %w", err)
	}

	if err := m.send(sub.Email, "Your quote request has been received", body); err != nil {
		m.count("acknowledgment", "error")
		return fmt.Errorf("failed to send acknowledgment: %w", err)
	}

	m.count("acknowledgment", "success")
	return nil
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) count(message, status string) {
	metrics.RelaySends.WithLabelValues(message, status).Inc()
}

func renderTemplate(tmpl *template.Template, sub *models.Submission) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, sub); err != nil {
		return "", err
	}
	return buf.String(), nil
}
