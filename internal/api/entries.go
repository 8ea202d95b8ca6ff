package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/glucotrack/backend/internal/middleware"
	"github.com/pageza/glucotrack/backend/internal/service"
	"github.com/pageza/glucotrack/backend/internal/units"
)

// EntryHandler exposes glucose entry endpoints. Reads are public and keyed
// by username; deletion requires a session token.
type EntryHandler struct {
	entries     service.IEntryService
	prefs       service.IPreferenceService
	recs        service.IRecommendationService
	authService middleware.TokenValidator
}

// NewEntryHandler creates a new EntryHandler instance
func NewEntryHandler(entries service.IEntryService, prefs service.IPreferenceService, recs service.IRecommendationService, authService middleware.TokenValidator) *EntryHandler {
	return &EntryHandler{
		entries:     entries,
		prefs:       prefs,
		recs:        recs,
		authService: authService,
	}
}

// RegisterRoutes registers the entry routes
func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.POST("", h.LogEntry)
		entries.GET("/:username", h.GetHistory)
		entries.GET("/:username/chart", h.GetChartData)
		entries.GET("/:username/stats", h.GetStats)
		entries.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteEntry)
	}
}

type LogEntryRequest struct {
	Username   string  `json:"username" binding:"required"`
	BloodSugar float64 `json:"blood_sugar" binding:"required"`
	Meal       string  `json:"meal" binding:"required"`
	Exercise   string  `json:"exercise" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Units      string  `json:"units"`
}

func (h *EntryHandler) LogEntry(c *gin.Context) {
	var req LogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	if req.Units == "" {
		req.Units = string(units.MgDL)
	}
	inputUnit, err := units.Parse(req.Units)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "units must be either mg/dL or mmol/L"})
		return
	}

	observedAt, err := parseEntryDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}

	entryID, err := h.entries.SaveEntry(c.Request.Context(), req.Username, req.BloodSugar, inputUnit, req.Meal, req.Exercise, observedAt)
	if err != nil {
		var outOfRange *units.OutOfRangeError
		switch {
		case errors.As(err, &outOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": outOfRange.Error()})
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	// Single preference fetch; the recommendation sees the value the way the
	// user will read it back.
	displayUnit := h.prefs.GetPreferredUnit(c.Request.Context(), req.Username)
	canonical, _ := units.ToCanonical(req.BloodSugar, inputUnit)
	displayValue, convErr := units.FromCanonical(canonical, displayUnit)
	if convErr != nil {
		displayValue = canonical
	}

	recommendation := h.recs.GetRecommendation(c.Request.Context(), req.Username, displayValue, req.Meal, req.Exercise)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Entry logged successfully",
		"entry_id":       entryID.String(),
		"recommendation": recommendation,
	})
}

func (h *EntryHandler) GetHistory(c *gin.Context) {
	username := c.Param("username")
	displayUnit := h.prefs.GetPreferredUnit(c.Request.Context(), username)

	entries := h.entries.GetHistory(c.Request.Context(), username)
	history := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		history = append(history, toEntryResponse(e, displayUnit))
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"units":   displayUnit,
	})
}

func (h *EntryHandler) GetChartData(c *gin.Context) {
	username := c.Param("username")
	displayUnit := h.prefs.GetPreferredUnit(c.Request.Context(), username)

	series := h.entries.GetChartSeries(c.Request.Context(), username)
	values := make([]float64, 0, len(series.Values))
	for _, v := range series.Values {
		converted, err := units.FromCanonical(v, displayUnit)
		if err != nil {
			converted = v
		}
		values = append(values, converted)
	}

	c.JSON(http.StatusOK, gin.H{
		"labels": series.Labels,
		"data":   values,
		"dates":  series.Dates,
		"units":  displayUnit,
	})
}

func (h *EntryHandler) GetStats(c *gin.Context) {
	username := c.Param("username")
	displayUnit := h.prefs.GetPreferredUnit(c.Request.Context(), username)

	stats := h.entries.GetStats(c.Request.Context(), username)
	avg, err := units.FromCanonical(stats.AvgBloodSugar, displayUnit)
	if err != nil {
		avg = stats.AvgBloodSugar
	}

	c.JSON(http.StatusOK, gin.H{
		"total_entries":     stats.TotalEntries,
		"avg_blood_sugar":   avg,
		"entries_this_week": stats.EntriesThisWeek,
		"units":             displayUnit,
	})
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	deleted, err := h.entries.DeleteEntry(c.Request.Context(), entryID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
