package testhelpers

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/glucotrack/backend/internal/models"
)

// CreateTestUser inserts a user with a bcrypt-hashed password and the
// default display unit.
func CreateTestUser(t *testing.T, db *gorm.DB, username, password string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username:       username,
		PasswordHash:   string(hashed),
		PreferredUnits: "mg/dL",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEntry inserts one glucose entry. bloodSugar is canonical mg/dL.
func CreateTestEntry(t *testing.T, db *gorm.DB, username string, bloodSugar float64, meal, exercise string, date time.Time) models.GlucoseEntry {
	t.Helper()

	entry := models.GlucoseEntry{
		EntryID:    uuid.New(),
		Username:   username,
		BloodSugar: bloodSugar,
		Meal:       meal,
		Exercise:   exercise,
		Date:       date,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// PerformRequest runs one request through the router and captures the
// response. headers may be nil.
func PerformRequest(router *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
