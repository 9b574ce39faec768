package handlers

import (
	"context"
	"time"

	"github.com/dhima/synclog/internal/api/response"
	"github.com/dhima/synclog/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger logging.Logger
	db     Pinger
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(logger logging.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{logger: logger, db: db}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Service  string `json:"service" example:"synclog"`
	Version  string `json:"version" example:"1.0.0"`
	Database string `json:"database,omitempty" example:"up"`
} // @name HealthResponse

// Health godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API service and its database
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} response.ErrorResponse "Database unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := HealthResponse{
		Status:  "ok",
		Service: "synclog",
		Version: "1.0.0",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Error("database health check failed", zap.Error(err))
			status.Status = "degraded"
			status.Database = "down"
			response.ServiceUnavailable(c, "database unreachable", status)
			return
		}
		status.Database = "up"
	}

	response.OK(c, status)
}
