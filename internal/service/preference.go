package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/pageza/glucotrack/backend/internal/models"
	"github.com/pageza/glucotrack/backend/internal/units"
	"gorm.io/gorm"
)

// ErrInvalidUnit rejects preference updates for units the converter does
// not support.
var ErrInvalidUnit = errors.New("invalid unit")

// UnitCache keeps each user's display unit in process memory. Entries live
// for the process lifetime with no eviction; the users row only seeds a
// fresh process.
type UnitCache struct {
	mu    sync.RWMutex
	units map[string]units.Unit
}

// NewUnitCache creates an empty cache.
func NewUnitCache() *UnitCache {
	return &UnitCache{units: make(map[string]units.Unit)}
}

// Get returns the cached unit for a user, if any.
func (c *UnitCache) Get(username string) (units.Unit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.units[username]
	return u, ok
}

// Set records a user's unit.
func (c *UnitCache) Set(username string, u units.Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.units[username] = u
}

// PreferenceService resolves and records per-user display units. The cache
// is injected so tests and the server share one instance explicitly.
type PreferenceService struct {
	db    *gorm.DB
	cache *UnitCache
}

var _ IPreferenceService = (*PreferenceService)(nil)

// NewPreferenceService creates a new PreferenceService instance
func NewPreferenceService(db *gorm.DB, cache *UnitCache) *PreferenceService {
	return &PreferenceService{db: db, cache: cache}
}

// GetPreferredUnit resolves the user's display unit: cache, then the users
// row (populating the cache), then the mg/dL default. A failing store
// degrades to the default so unit resolution never blocks a read.
func (s *PreferenceService) GetPreferredUnit(ctx context.Context, username string) units.Unit {
	if u, ok := s.cache.Get(username); ok {
		return u
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[PreferenceService] GetPreferredUnit degraded for %s: %v", username, err)
		}
		return units.MgDL
	}

	u, err := units.Parse(user.PreferredUnits)
	if err != nil {
		log.Printf("[PreferenceService] stored unit %q for %s is unusable, using default: %v", user.PreferredUnits, username, err)
		return units.MgDL
	}

	s.cache.Set(username, u)
	return u
}

// SetPreferredUnit validates and records a new display unit. The cache write
// is the source of truth for the running process; the users row is written
// through best-effort, so a down database does not lose the change.
func (s *PreferenceService) SetPreferredUnit(ctx context.Context, username, unit string) error {
	u, err := units.Parse(unit)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	s.cache.Set(username, u)

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("preferred_units", string(u)).Error; err != nil {
		log.Printf("[PreferenceService] durable unit write failed for %s: %v", username, err)
	}

	return nil
}
