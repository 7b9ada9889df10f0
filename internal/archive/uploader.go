// Package archive uploads snapshots of the submission set to S3-compatible
// object storage. Uploads are best-effort: a failed upload is logged and
// counted, never surfaced to the submitter.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/printlab/quote-api/config"
	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/pkg/logger"
	"github.com/printlab/quote-api/pkg/metrics"
)

// Uploader writes submission snapshots to an S3-compatible bucket.
type Uploader struct {
	s3Client *s3.Client
	bucket   string
	key      string
}

// NewUploader creates an archive uploader from the given configuration.
func NewUploader(cfg config.ArchiveConfig) (*Uploader, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("archive bucket name is required")
	}

	region := cfg.Region
	if region == "" {
		region = "ru-central1"
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token not needed
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	logger.Info("Archive uploader initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", region),
	)

	return &Uploader{
		s3Client: s3.New(opts),
		bucket:   cfg.BucketName,
		key:      cfg.ObjectKey,
	}, nil
}

// UploadSnapshot uploads the full submission set as a JSON object.
func (u *Uploader) UploadSnapshot(ctx context.Context, submissions []models.Submission) error {
	start := time.Now()
	operation := "uploadSnapshot"

	data, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		metrics.ArchiveUploads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = u.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(u.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.ArchiveUploads.WithLabelValues("error").Inc()
		logger.LogAPICall("object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", u.key),
		)
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}

	metrics.ArchiveUploads.WithLabelValues("success").Inc()
	logger.LogAPICall("object_storage", operation, "success", duration,
		zap.String("key", u.key),
		zap.Int("size_bytes", len(data)),
		zap.Int("submissions", len(submissions)),
	)
	return nil
}
