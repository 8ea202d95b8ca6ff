package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/glucotrack/backend/config"
	"github.com/pageza/glucotrack/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost: "127.0.0.1",
		ServerPort: "0",
		JWTSecret:  "test-secret",
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)

	server := New(testConfig(), db, nil)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "connected", resp["database"])
}

func TestServerWiresFullStack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)
	server := New(testConfig(), db, nil)

	register := `{"username":"alice","password":"password123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(register))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	entry := `{"username":"alice","blood_sugar":120.5,"meal":"oatmeal","exercise":"walk","date":"2025-03-10T08:00:00Z"}`
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/entries", strings.NewReader(entry))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["recommendation"], "GPT API is not available",
		"no LLM key in test config, the canned path must answer")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/advice/recommendation/alice", nil)
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "nil redis leaves advice routes unthrottled")
}

func TestServerStartShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)
	server := New(testConfig(), db, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Give the listener a moment to bind before shutting it down.
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err, "shutdown must not surface as a start error")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after Shutdown")
	}
}
