package repository

import (
	"context"

	"github.com/printlab/quote-api/internal/models"
)

// SubmissionStore is the append-only persistence contract for accepted
// submissions. Append assigns the id and must never lose a record once it
// returns success; ids are unique and strictly increasing. ReadAll reflects
// every successfully appended submission.
type SubmissionStore interface {
	Append(ctx context.Context, submission *models.Submission) (int64, error)
	ReadAll(ctx context.Context) ([]models.Submission, error)
}
