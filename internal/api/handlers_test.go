package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/glucotrack/backend/internal/testhelpers"
)

func TestHealthCheckEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := testhelpers.PerformRequest(env.router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "connected", resp["database"])
}

func TestHealthCheckEndpointDatabaseDown(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.Disconnect(t, env.db)

	w := testhelpers.PerformRequest(env.router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, "health stays 200 so load balancers can read the body")

	resp := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "degraded", resp["database"])
}
