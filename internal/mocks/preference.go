package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/glucotrack/backend/internal/units"
)

// MockPreferenceService is a mock implementation of the IPreferenceService interface
type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) GetPreferredUnit(ctx context.Context, username string) units.Unit {
	args := m.Called(ctx, username)
	return args.Get(0).(units.Unit)
}

func (m *MockPreferenceService) SetPreferredUnit(ctx context.Context, username, unit string) error {
	args := m.Called(ctx, username, unit)
	return args.Error(0)
}
