package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/pkg/metrics"
)

// FileStore persists submissions as a single JSON array on disk.
// Append is a mutex-guarded read-modify-write: the full set is loaded, the
// new record added, and the file atomically replaced (temp file + rename),
// so a crash mid-append never corrupts previously stored records.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed submission store at path.
// The parent directory is created if missing; a missing file is an empty store.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Append stores a new submission and returns its assigned id.
// Ids are strictly increasing: one greater than the largest stored id.
func (s *FileStore) Append(ctx context.Context, submission *models.Submission) (int64, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	submissions, err := s.load()
	if err != nil {
		s.observe("append", "error", start)
		return 0, err
	}

	var maxID int64
	for i := range submissions {
		if submissions[i].ID > maxID {
			maxID = submissions[i].ID
		}
	}
	submission.ID = maxID + 1
	submissions = append(submissions, *submission)

	if err := s.replace(submissions); err != nil {
		s.observe("append", "error", start)
		return 0, err
	}

	s.observe("append", "success", start)
	return submission.ID, nil
}

// ReadAll returns every stored submission in insertion order.
func (s *FileStore) ReadAll(ctx context.Context) ([]models.Submission, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	submissions, err := s.load()
	if err != nil {
		s.observe("read_all", "error", start)
		return nil, err
	}

	s.observe("read_all", "success", start)
	return submissions, nil
}

func (s *FileStore) load() ([]models.Submission, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Submission{}, nil
		}
		return nil, fmt.Errorf("failed to read submissions file: %w", err)
	}
	if len(data) == 0 {
		return []models.Submission{}, nil
	}

	var submissions []models.Submission
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, fmt.Errorf("failed to parse submissions file: %w", err)
	}
	return submissions, nil
}

// replace durably rewrites the full submission set. The temp file lives in
// the same directory as the target so the rename stays on one filesystem.
func (s *FileStore) replace(submissions []models.Submission) error {
	data, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submissions: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace submissions file: %w", err)
	}
	return nil
}

func (s *FileStore) observe(operation, status string, start time.Time) {
	duration := metrics.MeasureDuration(start)
	metrics.StoreOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.StoreOperationTotal.WithLabelValues(operation, status).Inc()
}
