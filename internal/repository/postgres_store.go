package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/pkg/metrics"
)

// PostgresStore persists submissions in a PostgreSQL table. The BIGSERIAL
// primary key satisfies the unique, strictly increasing id contract, and the
// database serializes concurrent inserts.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a submission store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Append inserts the submission and returns the database-assigned id.
func (s *PostgresStore) Append(ctx context.Context, submission *models.Submission) (int64, error) {
	start := time.Now()

	query := `
		INSERT INTO submissions (name, phone, email, company, task, promo, origin_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		submission.Name,
		submission.Phone,
		submission.Email,
		submission.Company,
		submission.Task,
		submission.Promo,
		submission.OriginIP,
		submission.CreatedAt,
	).Scan(&submission.ID)

	if err != nil {
		s.observe("append", "error", start)
		return 0, fmt.Errorf("failed to insert submission: %w", err)
	}

	s.observe("append", "success", start)
	return submission.ID, nil
}

// ReadAll returns every stored submission ordered by id.
func (s *PostgresStore) ReadAll(ctx context.Context) ([]models.Submission, error) {
	start := time.Now()

	query := `
		SELECT id, name, phone, email, company, task, promo, origin_ip, created_at
		FROM submissions
		ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.observe("read_all", "error", start)
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Phone,
			&sub.Email,
			&sub.Company,
			&sub.Task,
			&sub.Promo,
			&sub.OriginIP,
			&sub.CreatedAt,
		); err != nil {
			s.observe("read_all", "error", start)
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		s.observe("read_all", "error", start)
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	s.observe("read_all", "success", start)
	return submissions, nil
}

func (s *PostgresStore) observe(operation, status string, start time.Time) {
	duration := metrics.MeasureDuration(start)
	metrics.StoreOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StoreOperationTotal.WithLabelValues(operation, status).Inc()
}
