package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/glucotrack/backend/internal/models"
	"github.com/pageza/glucotrack/backend/internal/types"
	"github.com/pageza/glucotrack/backend/internal/units"
)

// IEntryService defines the interface for glucose entry operations
type IEntryService interface {
	SaveEntry(ctx context.Context, username string, value float64, inputUnit units.Unit, meal, exercise string, observedAt time.Time) (uuid.UUID, error)
	GetHistory(ctx context.Context, username string) []models.GlucoseEntry
	GetRecent(ctx context.Context, username string, limit int) []models.GlucoseEntry
	GetStats(ctx context.Context, username string) EntryStats
	GetChartSeries(ctx context.Context, username string) ChartSeries
	DeleteEntry(ctx context.Context, entryID uuid.UUID) (bool, error)
}

// IPreferenceService defines the interface for display unit preferences
type IPreferenceService interface {
	GetPreferredUnit(ctx context.Context, username string) units.Unit
	SetPreferredUnit(ctx context.Context, username, unit string) error
}

// IRecommendationService defines the interface for advice generation. All
// methods take the glucose value in the caller's display unit and always
// return usable text; generator failures degrade to canned advice.
type IRecommendationService interface {
	GetRecommendation(ctx context.Context, username string, bloodSugar float64, meal, exercise string) string
	GetMealSuggestions(ctx context.Context, bloodSugar float64, preferences string) string
	GetExerciseRecommendations(ctx context.Context, bloodSugar float64, currentExercise string) string
}

// IAuthService defines the interface for account operations
type IAuthService interface {
	UserExists(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IExportService defines the interface for history export and backup
type IExportService interface {
	ExportHistoryCSV(ctx context.Context, username string) ([]byte, error)
	BackupToS3(ctx context.Context, username string, data []byte) (string, error)
}
