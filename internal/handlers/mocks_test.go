package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// MockQuoteService is a mock implementation of services.QuoteServiceInterface
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) SubmitQuoteForm(ctx context.Context, req *models.SubmitQuoteRequest, originIP string) (*models.SubmitQuoteResponse, error) {
	args := m.Called(ctx, req, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitQuoteResponse), args.Error(1)
}

func (m *MockQuoteService) Stats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}
