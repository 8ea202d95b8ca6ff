package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/glucotrack/backend/internal/middleware"
	"github.com/pageza/glucotrack/backend/internal/mocks"
	"github.com/pageza/glucotrack/backend/internal/types"
)

// protectedRouter wires the auth middleware in front of a probe handler that
// echoes the username the middleware stored on the context.
func protectedRouter(validator middleware.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.AuthMiddleware(validator), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	validator := new(mocks.MockAuthService)
	router := protectedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing authorization header"}`, w.Body.String())
	validator.AssertNotCalled(t, "ValidateToken")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	validator := new(mocks.MockAuthService)
	router := protectedRouter(validator)

	for _, header := range []string{"tok-123", "Basic tok-123", "Bearer a b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.JSONEq(t, `{"error":"invalid authorization header format"}`, w.Body.String())
	}
	validator.AssertNotCalled(t, "ValidateToken")
}

func TestAuthMiddlewareRejectedToken(t *testing.T) {
	validator := new(mocks.MockAuthService)
	validator.On("ValidateToken", "bad-token").Return(nil, errors.New("token is expired"))
	router := protectedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"token is expired"}`, w.Body.String())
	validator.AssertExpectations(t)
}

func TestAuthMiddlewareSetsUsername(t *testing.T) {
	validator := new(mocks.MockAuthService)
	validator.On("ValidateToken", "good-token").Return(&types.TokenClaims{Username: "alice"}, nil)
	router := protectedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())
	validator.AssertExpectations(t)
}
