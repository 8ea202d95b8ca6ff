package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthCheck reports liveness plus database connectivity. The endpoint
// stays 200 while the store is down; readers degrade instead of failing, so
// the process is still serving.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil {
			dbStatus = "degraded"
		} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			dbStatus = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": dbStatus,
		})
	}
}
