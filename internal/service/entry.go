package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/glucotrack/backend/internal/models"
	"github.com/pageza/glucotrack/backend/internal/units"
	"gorm.io/gorm"
)

// ErrStoreUnavailable marks persistence failures on mutation paths. Read
// paths never return it; they degrade to empty results and log instead.
var ErrStoreUnavailable = errors.New("store unavailable")

// storeTimeout bounds every database round-trip in this package.
const storeTimeout = 5 * time.Second

// EntryService handles glucose entry persistence and aggregation. Stored
// values are always canonical mg/dL; converting for display is the caller's
// job.
type EntryService struct {
	db *gorm.DB
}

var _ IEntryService = (*EntryService)(nil)

// NewEntryService creates a new EntryService instance
func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db}
}

// EntryStats summarizes a user's history. AvgBloodSugar is canonical mg/dL
// rounded to one decimal; EntriesThisWeek counts observations in the last
// 168 hours from call time (UTC).
type EntryStats struct {
	TotalEntries    int64   `json:"total_entries"`
	AvgBloodSugar   float64 `json:"avg_blood_sugar"`
	EntriesThisWeek int64   `json:"entries_this_week"`
}

// ChartSeries holds aligned per-entry slices for plotting, oldest first.
// Labels are "MM/DD", Dates "YYYY-MM-DD", Values canonical mg/dL.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"data"`
	Dates  []string  `json:"dates"`
}

// SaveEntry converts the reading to mg/dL, validates it against the storable
// range and inserts a row with a fresh id. Validation happens before any
// write; a failing store surfaces as ErrStoreUnavailable rather than a
// silent drop.
func (s *EntryService) SaveEntry(ctx context.Context, username string, value float64, inputUnit units.Unit, meal, exercise string, observedAt time.Time) (uuid.UUID, error) {
	canonical, err := units.ToCanonical(value, inputUnit)
	if err != nil {
		return uuid.Nil, err
	}

	min, max, _ := units.ValidRange(units.Canonical)
	if canonical < min || canonical > max {
		return uuid.Nil, &units.OutOfRangeError{Min: min, Max: max, Unit: units.Canonical}
	}

	entry := models.GlucoseEntry{
		EntryID:    uuid.New(),
		Username:   username,
		BloodSugar: canonical,
		Meal:       meal,
		Exercise:   exercise,
		Date:       observedAt,
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return entry.EntryID, nil
}

// GetHistory returns the user's entries newest first. Unknown users get an
// empty slice; so does a failing store, so read pages keep rendering while
// the database is down.
func (s *EntryService) GetHistory(ctx context.Context, username string) []models.GlucoseEntry {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	entries := make([]models.GlucoseEntry, 0)
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		log.Printf("[EntryService] GetHistory degraded for %s: %v", username, err)
		return []models.GlucoseEntry{}
	}
	return entries
}

// GetRecent returns at most limit entries, newest first, with the same
// degrade rule as GetHistory.
func (s *EntryService) GetRecent(ctx context.Context, username string, limit int) []models.GlucoseEntry {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	entries := make([]models.GlucoseEntry, 0)
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("date DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		log.Printf("[EntryService] GetRecent degraded for %s: %v", username, err)
		return []models.GlucoseEntry{}
	}
	return entries
}

// GetStats aggregates the user's history. Zero-value stats for unknown
// users and for a failing store.
func (s *EntryService) GetStats(ctx context.Context, username string) EntryStats {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var values []float64
	if err := s.db.WithContext(ctx).
		Model(&models.GlucoseEntry{}).
		Where("username = ?", username).
		Pluck("blood_sugar", &values).Error; err != nil {
		log.Printf("[EntryService] GetStats degraded for %s: %v", username, err)
		return EntryStats{}
	}

	if len(values) == 0 {
		return EntryStats{}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	weekStart := time.Now().UTC().Add(-7 * 24 * time.Hour)
	var weekCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.GlucoseEntry{}).
		Where("username = ? AND date >= ?", username, weekStart).
		Count(&weekCount).Error; err != nil {
		log.Printf("[EntryService] GetStats degraded for %s: %v", username, err)
		return EntryStats{}
	}

	return EntryStats{
		TotalEntries:    int64(len(values)),
		AvgBloodSugar:   units.Round1(sum / float64(len(values))),
		EntriesThisWeek: weekCount,
	}
}

// GetChartSeries returns the user's entries as aligned plotting slices,
// oldest first. The three slices are always the same length and never nil.
func (s *EntryService) GetChartSeries(ctx context.Context, username string) ChartSeries {
	series := ChartSeries{
		Labels: []string{},
		Values: []float64{},
		Dates:  []string{},
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var entries []models.GlucoseEntry
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		log.Printf("[EntryService] GetChartSeries degraded for %s: %v", username, err)
		return series
	}

	for _, e := range entries {
		series.Labels = append(series.Labels, e.Date.Format("01/02"))
		series.Values = append(series.Values, e.BloodSugar)
		series.Dates = append(series.Dates, e.Date.Format("2006-01-02"))
	}
	return series
}

// DeleteEntry removes one entry by id. Returns true iff a row was removed;
// deleting an unknown id is not an error.
func (s *EntryService) DeleteEntry(ctx context.Context, entryID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	result := s.db.WithContext(ctx).Delete(&models.GlucoseEntry{}, "entry_id = ?", entryID)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, result.Error)
	}
	return result.RowsAffected > 0, nil
}
