package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/glucotrack/backend/internal/service"
)

// PreferenceHandler exposes display unit preference endpoints.
type PreferenceHandler struct {
	prefs service.IPreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler instance
func NewPreferenceHandler(prefs service.IPreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// RegisterRoutes registers the preference routes
func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	preferences := router.Group("/preferences")
	{
		preferences.GET("/:username", h.GetPreferences)
		preferences.PUT("", h.UpdatePreferences)
	}
}

type UpdatePreferencesRequest struct {
	Username string `json:"username" binding:"required"`
	Units    string `json:"units" binding:"required"`
}

func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	username := c.Param("username")
	unit := h.prefs.GetPreferredUnit(c.Request.Context(), username)

	c.JSON(http.StatusOK, gin.H{"units": unit})
}

func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and units are required"})
		return
	}

	if err := h.prefs.SetPreferredUnit(c.Request.Context(), req.Username, req.Units); err != nil {
		if errors.Is(err, service.ErrInvalidUnit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "units must be either mg/dL or mmol/L"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update units"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Units updated successfully",
		"units":   req.Units,
	})
}
