package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/glucotrack/backend/internal/middleware"
	"github.com/pageza/glucotrack/backend/internal/service"
	"github.com/pageza/glucotrack/backend/internal/units"
)

// noHistoryRecommendation answers recommendation requests for users with no
// entries yet.
const noHistoryRecommendation = "Start logging your daily data to receive personalized recommendations!"

// AdviceHandler exposes the advice endpoints. These sit in front of a paid
// generator, so the whole group is rate limited when Redis is available.
type AdviceHandler struct {
	recs        service.IRecommendationService
	entries     service.IEntryService
	prefs       service.IPreferenceService
	rateLimiter *middleware.RateLimiter
}

// NewAdviceHandler creates a new AdviceHandler instance. rateLimiter may be
// nil, which disables throttling.
func NewAdviceHandler(recs service.IRecommendationService, entries service.IEntryService, prefs service.IPreferenceService, rateLimiter *middleware.RateLimiter) *AdviceHandler {
	return &AdviceHandler{
		recs:        recs,
		entries:     entries,
		prefs:       prefs,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the advice routes
func (h *AdviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	advice := router.Group("/advice")

	// Apply rate limiting if available
	if h.rateLimiter != nil {
		advice.Use(h.rateLimiter.RateLimitMiddleware())
	}

	{
		advice.GET("/recommendation/:username", h.GetRecommendation)
		advice.POST("/meal-suggestions", h.GetMealSuggestions)
		advice.POST("/exercise-recommendations", h.GetExerciseRecommendations)
	}
}

type MealSuggestionsRequest struct {
	BloodSugar  float64 `json:"blood_sugar" binding:"required"`
	Preferences string  `json:"preferences"`
}

type ExerciseRecommendationsRequest struct {
	BloodSugar      float64 `json:"blood_sugar" binding:"required"`
	CurrentExercise string  `json:"current_exercise"`
}

// GetRecommendation advises on the most recent of the user's last entries.
func (h *AdviceHandler) GetRecommendation(c *gin.Context) {
	username := c.Param("username")

	recent := h.entries.GetRecent(c.Request.Context(), username, 5)
	if len(recent) == 0 {
		c.JSON(http.StatusOK, gin.H{"recommendation": noHistoryRecommendation})
		return
	}

	latest := recent[0]
	displayUnit := h.prefs.GetPreferredUnit(c.Request.Context(), username)
	value, err := units.FromCanonical(latest.BloodSugar, displayUnit)
	if err != nil {
		value = latest.BloodSugar
	}

	recommendation := h.recs.GetRecommendation(c.Request.Context(), username, value, latest.Meal, latest.Exercise)

	c.JSON(http.StatusOK, gin.H{
		"recommendation": recommendation,
		"latest_entry":   toEntryResponse(latest, displayUnit),
	})
}

func (h *AdviceHandler) GetMealSuggestions(c *gin.Context) {
	var req MealSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blood sugar level is required"})
		return
	}

	suggestions := h.recs.GetMealSuggestions(c.Request.Context(), req.BloodSugar, req.Preferences)
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *AdviceHandler) GetExerciseRecommendations(c *gin.Context) {
	var req ExerciseRecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blood sugar level is required"})
		return
	}

	recommendations := h.recs.GetExerciseRecommendations(c.Request.Context(), req.BloodSugar, req.CurrentExercise)
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}
