package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/printlab/quote-api/internal/models"
)

// MockSubmissionStore is a mock implementation of repository.SubmissionStore
type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) Append(ctx context.Context, submission *models.Submission) (int64, error) {
	args := m.Called(ctx, submission)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubmissionStore) ReadAll(ctx context.Context) ([]models.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

// MockNotificationRelay is a mock implementation of NotificationRelay
type MockNotificationRelay struct {
	mock.Mock
}

func (m *MockNotificationRelay) SendAdminNotification(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockNotificationRelay) SendAcknowledgment(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

// MockSnapshotArchiver is a mock implementation of SnapshotArchiver
type MockSnapshotArchiver struct {
	mock.Mock
}

func (m *MockSnapshotArchiver) UploadSnapshot(ctx context.Context, submissions []models.Submission) error {
	args := m.Called(ctx, submissions)
	return args.Error(0)
}
