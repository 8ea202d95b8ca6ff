package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/glucotrack/backend/internal/models"
	"github.com/pageza/glucotrack/backend/internal/service"
	"github.com/pageza/glucotrack/backend/internal/units"
)

// MockEntryService is a mock implementation of the IEntryService interface
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) SaveEntry(ctx context.Context, username string, value float64, inputUnit units.Unit, meal, exercise string, observedAt time.Time) (uuid.UUID, error) {
	args := m.Called(ctx, username, value, inputUnit, meal, exercise, observedAt)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockEntryService) GetHistory(ctx context.Context, username string) []models.GlucoseEntry {
	args := m.Called(ctx, username)
	return args.Get(0).([]models.GlucoseEntry)
}

func (m *MockEntryService) GetRecent(ctx context.Context, username string, limit int) []models.GlucoseEntry {
	args := m.Called(ctx, username, limit)
	return args.Get(0).([]models.GlucoseEntry)
}

func (m *MockEntryService) GetStats(ctx context.Context, username string) service.EntryStats {
	args := m.Called(ctx, username)
	return args.Get(0).(service.EntryStats)
}

func (m *MockEntryService) GetChartSeries(ctx context.Context, username string) service.ChartSeries {
	args := m.Called(ctx, username)
	return args.Get(0).(service.ChartSeries)
}

func (m *MockEntryService) DeleteEntry(ctx context.Context, entryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, entryID)
	return args.Bool(0), args.Error(1)
}
