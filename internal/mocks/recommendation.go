package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRecommendationService is a mock implementation of the
// IRecommendationService interface
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) GetRecommendation(ctx context.Context, username string, bloodSugar float64, meal, exercise string) string {
	args := m.Called(ctx, username, bloodSugar, meal, exercise)
	return args.String(0)
}

func (m *MockRecommendationService) GetMealSuggestions(ctx context.Context, bloodSugar float64, preferences string) string {
	args := m.Called(ctx, bloodSugar, preferences)
	return args.String(0)
}

func (m *MockRecommendationService) GetExerciseRecommendations(ctx context.Context, bloodSugar float64, currentExercise string) string {
	args := m.Called(ctx, bloodSugar, currentExercise)
	return args.String(0)
}
