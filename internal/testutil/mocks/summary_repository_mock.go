package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/cognitrain/internal/models"
)

// MockSummaryRepository is a mock implementation of repository.SummaryRepository
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Upsert(ctx context.Context, summary models.ProgressSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryRepository) Get(ctx context.Context, profileID int64, gameType string) (*models.ProgressSummary, error) {
	args := m.Called(ctx, profileID, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressSummary), args.Error(1)
}

func (m *MockSummaryRepository) ListForProfile(ctx context.Context, profileID int64) ([]models.ProgressSummary, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressSummary), args.Error(1)
}
