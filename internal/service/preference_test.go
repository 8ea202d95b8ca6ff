package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/glucotrack/backend/internal/models"
	"github.com/pageza/glucotrack/backend/internal/service"
	"github.com/pageza/glucotrack/backend/internal/testhelpers"
	"github.com/pageza/glucotrack/backend/internal/units"
)

func TestGetPreferredUnitDefaultsToMgDL(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewPreferenceService(db, service.NewUnitCache())

	assert.Equal(t, units.MgDL, svc.GetPreferredUnit(context.Background(), "nobody"))
}

func TestSetPreferredUnitRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.CreateTestUser(t, db, "alice", "password123")
	svc := service.NewPreferenceService(db, service.NewUnitCache())
	ctx := context.Background()

	require.NoError(t, svc.SetPreferredUnit(ctx, "alice", "mmol/L"))
	assert.Equal(t, units.MmolL, svc.GetPreferredUnit(ctx, "alice"))

	var user models.User
	require.NoError(t, db.First(&user, "username = ?", "alice").Error)
	assert.Equal(t, "mmol/L", user.PreferredUnits, "write-through to the users row")
}

func TestSetPreferredUnitRejectsUnknown(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewPreferenceService(db, service.NewUnitCache())

	err := svc.SetPreferredUnit(context.Background(), "alice", "celsius")
	assert.ErrorIs(t, err, service.ErrInvalidUnit)
}

func TestGetPreferredUnitReadsDurableRowIntoCache(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice", "password123")
	user.PreferredUnits = "mmol/L"
	require.NoError(t, db.Save(&user).Error)

	// Fresh cache, as after a process restart.
	svc := service.NewPreferenceService(db, service.NewUnitCache())
	ctx := context.Background()

	assert.Equal(t, units.MmolL, svc.GetPreferredUnit(ctx, "alice"))

	// Once cached, the unit survives a database outage.
	testhelpers.Disconnect(t, db)
	assert.Equal(t, units.MmolL, svc.GetPreferredUnit(ctx, "alice"))
}

func TestSetPreferredUnitSurvivesStoreOutage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.CreateTestUser(t, db, "alice", "password123")
	svc := service.NewPreferenceService(db, service.NewUnitCache())
	ctx := context.Background()

	testhelpers.Disconnect(t, db)

	require.NoError(t, svc.SetPreferredUnit(ctx, "alice", "mmol/L"), "durable failure is not surfaced")
	assert.Equal(t, units.MmolL, svc.GetPreferredUnit(ctx, "alice"), "cache is the source of truth")
}

func TestGetPreferredUnitDegradesToDefaultOnOutage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.CreateTestUser(t, db, "alice", "password123")
	svc := service.NewPreferenceService(db, service.NewUnitCache())

	testhelpers.Disconnect(t, db)

	assert.Equal(t, units.MgDL, svc.GetPreferredUnit(context.Background(), "alice"))
}

func TestUnitCacheIsSharedAcrossServices(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.CreateTestUser(t, db, "alice", "password123")
	cache := service.NewUnitCache()
	ctx := context.Background()

	writer := service.NewPreferenceService(db, cache)
	reader := service.NewPreferenceService(db, cache)

	require.NoError(t, writer.SetPreferredUnit(ctx, "alice", "mmol/L"))
	assert.Equal(t, units.MmolL, reader.GetPreferredUnit(ctx, "alice"))
}
