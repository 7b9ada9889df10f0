package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printlab/quote-api/config"
	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testSubmission() *models.Submission {
	return &models.Submission{
		ID:        1,
		Name:      "Anna Petrova",
		Phone:     "+79123456789",
		Email:     "anna@example.com",
		Company:   "Print Co",
		Task:      "Print 500 business cards",
		Promo:     "SPRING",
		CreatedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}
}

func TestNew_GmailProvider(t *testing.T) {
	m, err := New(config.MailConfig{
		Provider: config.MailProviderGmail,
		Username: "sender@gmail.com",
		Password: "app-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.gmail.com", m.dialer.Host)
	assert.Equal(t, 587, m.dialer.Port)
	assert.False(t, m.dialer.SSL)

	// From and admin recipient fall back to the account itself
	assert.Equal(t, "sender@gmail.com", m.from)
	assert.Equal(t, "sender@gmail.com", m.adminTo)
}

func TestNew_GenericProvider(t *testing.T) {
	m, err := New(config.MailConfig{
		Provider: config.MailProviderGeneric,
		Host:     "mail.example.com",
		Port:     465,
		SSL:      true,
		Username: "sender@example.com",
		Password: "secret",
		From:     "noreply@example.com",
		AdminTo:  "sales@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com", m.dialer.Host)
	assert.Equal(t, 465, m.dialer.Port)
	assert.True(t, m.dialer.SSL)
	assert.Equal(t, "noreply@example.com", m.from)
	assert.Equal(t, "sales@example.com", m.adminTo)
}

func TestNew_GenericProviderRequiresHost(t *testing.T) {
	_, err := New(config.MailConfig{
		Provider: config.MailProviderGeneric,
		Username: "sender@example.com",
		Password: "secret",
	})
	assert.Error(t, err)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(config.MailConfig{
		Provider: "carrier-pigeon",
		Username: "sender@example.com",
		Password: "secret",
	})
	assert.Error(t, err)
}

func TestAdminTemplate(t *testing.T) {
	body, err := renderTemplate(adminTemplate, testSubmission())
	require.NoError(t, err)

	assert.Contains(t, body, "Anna Petrova")
	assert.Contains(t, body, "+79123456789")
	assert.Contains(t, body, "anna@example.com")
	assert.Contains(t, body, "Print Co")
	assert.Contains(t, body, "SPRING")
	assert.Contains(t, body, "Print 500 business cards")
	assert.Contains(t, body, "2026-08-29 12:00:00 UTC")
}

func TestAdminTemplate_OmitsEmptyOptionalFields(t *testing.T) {
	sub := testSubmission()
	sub.Company = ""
	sub.Promo = ""

	body, err := renderTemplate(adminTemplate, sub)
	require.NoError(t, err)

	assert.NotContains(t, body, "Company:")
	assert.NotContains(t, body, "Promo code:")
}

func TestAckTemplate(t *testing.T) {
	body, err := renderTemplate(ackTemplate, testSubmission())
	require.NoError(t, err)

	assert.Contains(t, body, "Anna Petrova")
	assert.Contains(t, body, "Thank you for your request!")
	assert.Contains(t, body, "Print 500 business cards")
}

func TestTemplates_EscapeSubmittedMarkup(t *testing.T) {
	sub := testSubmission()
	sub.Task = `<script>alert("x")</script>`

	body, err := renderTemplate(adminTemplate, sub)
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
