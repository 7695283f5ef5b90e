package handler

import (
	"backoffice-service/pkg/logger"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var pingDB func() error

// InitHealthHandler sets the database check used by ?check=db
func InitHealthHandler(ping func() error) {
	pingDB = ping
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	log := logger.FromContext(c)

	// Basic response
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	// Check database connection if requested
	if c.QueryParam("check") == "db" {
		if pingDB == nil {
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Database check not configured"
			return c.JSON(http.StatusInternalServerError, response)
		}

		if err := pingDB(); err != nil {
			log.Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Failed to ping database"
			return c.JSON(http.StatusInternalServerError, response)
		}

		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
