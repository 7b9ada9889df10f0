package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/internal/repository"
	"github.com/printlab/quote-api/internal/validation"
	apperrors "github.com/printlab/quote-api/pkg/errors"
	"github.com/printlab/quote-api/pkg/logger"
	"github.com/printlab/quote-api/pkg/metrics"
	"github.com/printlab/quote-api/pkg/tracing"
)

const notifyTimeout = 30 * time.Second

// QuoteService owns the submission pipeline: authoritative validation, the
// durable append, and the best-effort notification and archive fan-out.
type QuoteService struct {
	store     repository.SubmissionStore
	relay     NotificationRelay // nil when the mail relay is not configured
	archiver  SnapshotArchiver  // nil when archiving is not configured
	validator *validation.Validator
}

// NewQuoteService creates a new quote service instance
func NewQuoteService(store repository.SubmissionStore, relay NotificationRelay, archiver SnapshotArchiver) *QuoteService {
	return &QuoteService{
		store:     store,
		relay:     relay,
		archiver:  archiver,
		validator: validation.New(),
	}
}

// SubmitQuoteForm runs one submission attempt through the validation gate and,
// on success, persists it and fires the notifications. The returned response
// reports success iff the submission was durably stored.
func (s *QuoteService) SubmitQuoteForm(ctx context.Context, req *models.SubmitQuoteRequest, originIP string) (*models.SubmitQuoteResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "QuoteService.SubmitQuoteForm")
	defer span.End()

	validation.Normalize(req)

	if fieldErrors := s.validator.ValidateSubmission(req); len(fieldErrors) > 0 {
		span.SetAttributes(attribute.Int("validation.error_count", len(fieldErrors)))
		metrics.QuoteFormSubmissions.WithLabelValues("validation_failed").Inc()
		logger.Warn("Quote form validation failed",
			zap.Int("error_count", len(fieldErrors)),
			zap.String("origin_ip", originIP),
		)
		return &models.SubmitQuoteResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  fieldErrors,
		}, nil
	}

	submission := &models.Submission{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Company:   req.Company,
		Task:      req.Task,
		Promo:     req.Promo,
		OriginIP:  originIP,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.store.Append(ctx, submission)
	if err != nil {
		metrics.QuoteFormSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to save submission", zap.Error(err))
		return nil, apperrors.InternalError("failed to save submission")
	}

	span.SetAttributes(attribute.Int64("submission.id", id))

	// Persistence decided the outcome; notifications and archiving are
	// fire-and-forget from here on.
	s.notifyAsync(submission)

	metrics.QuoteFormSubmissions.WithLabelValues("success").Inc()
	logger.Info("Submission accepted",
		zap.Int64("submission_id", id),
		zap.String("origin_ip", originIP),
	)

	return &models.SubmitQuoteResponse{
		Success: true,
		Message: "Your request has been submitted! We will contact you shortly.",
		ID:      id,
	}, nil
}

// Stats recomputes aggregate submission counts by scanning the full store.
func (s *QuoteService) Stats(ctx context.Context) (*models.Stats, error) {
	ctx, span := tracing.StartSpan(ctx, "QuoteService.Stats")
	defer span.End()

	submissions, err := s.store.ReadAll(ctx)
	if err != nil {
		logger.Error("Failed to read submissions for stats", zap.Error(err))
		return nil, apperrors.InternalError("failed to read submissions")
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	ny, nm, nd := now.Date()

	stats := &models.Stats{Total: len(submissions)}
	for i := range submissions {
		created := submissions[i].CreatedAt.In(now.Location())
		y, m, d := created.Date()
		if y == ny && m == nm && d == nd {
			stats.Today++
		}
		if created.After(weekAgo) {
			stats.ThisWeek++
		}
	}
	return stats, nil
}

func (s *QuoteService) notifyAsync(submission *models.Submission) {
	if s.relay != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()

			if err := s.relay.SendAdminNotification(ctx, submission); err != nil {
				logger.Error("Failed to send admin notification",
					zap.Error(err),
					zap.Int64("submission_id", submission.ID),
				)
			}
			if err := s.relay.SendAcknowledgment(ctx, submission); err != nil {
				logger.Error("Failed to send acknowledgment",
					zap.Error(err),
					zap.Int64("submission_id", submission.ID),
				)
			}
		}()
	}

	if s.archiver != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()

			submissions, err := s.store.ReadAll(ctx)
			if err != nil {
				logger.Error("Failed to read submissions for archive", zap.Error(err))
				return
			}
			if err := s.archiver.UploadSnapshot(ctx, submissions); err != nil {
				logger.Error("Failed to upload submission archive",
					zap.Error(err),
					zap.Int64("submission_id", submission.ID),
				)
			}
		}()
	}
}
