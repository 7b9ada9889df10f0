package services

import (
	"context"

	"github.com/printlab/quote-api/internal/models"
)

// QuoteServiceInterface defines the quote submission pipeline operations
type QuoteServiceInterface interface {
	SubmitQuoteForm(ctx context.Context, req *models.SubmitQuoteRequest, originIP string) (*models.SubmitQuoteResponse, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// NotificationRelay sends the post-submission notification messages.
// Both sends are best-effort: failures must never change the submission
// outcome, which is decided solely by persistence.
type NotificationRelay interface {
	SendAdminNotification(ctx context.Context, submission *models.Submission) error
	SendAcknowledgment(ctx context.Context, submission *models.Submission) error
}

// SnapshotArchiver uploads submission set snapshots to external storage.
type SnapshotArchiver interface {
	UploadSnapshot(ctx context.Context, submissions []models.Submission) error
}
