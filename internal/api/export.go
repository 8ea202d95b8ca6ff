package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/glucotrack/backend/internal/middleware"
	"github.com/pageza/glucotrack/backend/internal/service"
)

// ExportHandler serves CSV downloads of a user's history. The route needs a
// session token since the export contains the full record.
type ExportHandler struct {
	export      service.IExportService
	authService middleware.TokenValidator
}

// NewExportHandler creates a new ExportHandler instance
func NewExportHandler(export service.IExportService, authService middleware.TokenValidator) *ExportHandler {
	return &ExportHandler{
		export:      export,
		authService: authService,
	}
}

// RegisterRoutes registers the export routes
func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	export := router.Group("/export")
	export.Use(middleware.AuthMiddleware(h.authService))
	{
		export.GET("/:username", h.ExportHistory)
	}
}

// ExportHistory streams the user's history as a CSV attachment. When a
// backup bucket is configured the file is also mirrored to S3 and the
// presigned download link is exposed via the X-Backup-URL header; backup
// trouble never fails the download itself.
func (h *ExportHandler) ExportHistory(c *gin.Context) {
	username := c.Param("username")

	data, err := h.export.ExportHistoryCSV(c.Request.Context(), username)
	if err != nil {
		log.Printf("[ExportHandler] export failed for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export history"})
		return
	}

	if url, err := h.export.BackupToS3(c.Request.Context(), username, data); err != nil {
		log.Printf("[ExportHandler] backup failed for %s: %v", username, err)
	} else if url != "" {
		c.Header("X-Backup-URL", url)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", username+"-glucose-history.csv"))
	c.Data(http.StatusOK, "text/csv", data)
}
