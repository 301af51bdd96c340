package mocks

import "github.com/stretchr/testify/mock"

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueSummaryRefresh(profileID int64, gameType string) error {
	args := m.Called(profileID, gameType)
	return args.Error(0)
}
