package api

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/glucotrack/backend/internal/service"
	"github.com/pageza/glucotrack/backend/internal/testhelpers"
)

// testEnv wires the full HTTP surface against an in-memory database with the
// advice generator disabled, mirroring production wiring minus redis and S3.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	prefs  *service.PreferenceService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)

	authSvc := service.NewAuthService(db, "test-secret")
	entrySvc := service.NewEntryService(db)
	prefSvc := service.NewPreferenceService(db, service.NewUnitCache())
	recSvc := service.NewRecommendationService(nil)
	exportSvc := service.NewExportService(entrySvc, nil)

	router := gin.New()
	router.GET("/health", HealthCheck(db))

	v1 := router.Group("/api/v1")
	NewAuthHandler(authSvc).RegisterRoutes(v1)
	NewEntryHandler(entrySvc, prefSvc, recSvc, authSvc).RegisterRoutes(v1)
	NewPreferenceHandler(prefSvc).RegisterRoutes(v1)
	NewAdviceHandler(recSvc, entrySvc, prefSvc, nil).RegisterRoutes(v1)
	NewExportHandler(exportSvc, authSvc).RegisterRoutes(v1)

	return &testEnv{
		router: router,
		db:     db,
		auth:   authSvc,
		prefs:  prefSvc,
	}
}

// mustMarshal fails the test on marshal errors so call sites stay one line.
func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	return data
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}
