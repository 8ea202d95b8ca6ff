package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/glucotrack/backend/internal/testhelpers"
)

func TestExportEndpointRequiresToken(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateTestUser(t, env.db, "alice", "password123")

	w := testhelpers.PerformRequest(env.router, http.MethodGet, "/api/v1/export/alice", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testhelpers.PerformRequest(env.router, http.MethodGet, "/api/v1/export/alice", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateTestUser(t, env.db, "alice", "password123")
	testhelpers.CreateTestEntry(t, env.db, "alice", 120.5, "oatmeal", "walk", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	token, err := env.auth.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	w := testhelpers.PerformRequest(env.router, http.MethodGet, "/api/v1/export/alice", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="alice-glucose-history.csv"`, w.Header().Get("Content-Disposition"))
	assert.Empty(t, w.Header().Get("X-Backup-URL"), "no backup bucket is configured in tests")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "entry_id,username,blood_sugar_mg_dl,meal,exercise,date,created_at", lines[0])
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[1], "120.5")
	assert.Contains(t, lines[1], "2025-03-10T08:00:00Z")
}

func TestExportEndpointEmptyHistory(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateTestUser(t, env.db, "alice", "password123")

	token, err := env.auth.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	w := testhelpers.PerformRequest(env.router, http.MethodGet, "/api/v1/export/alice", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "entry_id,username,blood_sugar_mg_dl,meal,exercise,date,created_at\n", w.Body.String())
}
