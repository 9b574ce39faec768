package handlers

import (
	"net/http"

	"github.com/dhima/synclog/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the Prometheus exposition.
type MetricsHandler struct {
	logger  logging.Logger
	handler http.Handler
}

// NewMetricsHandler serves the default Prometheus registry.
func NewMetricsHandler(logger logging.Logger) *MetricsHandler {
	return &MetricsHandler{logger: logger, handler: promhttp.Handler()}
}

// Metrics godoc
// @Summary Prometheus metrics
// @Description Record writes, skipped events, store failures and retention runs in Prometheus text format
// @Tags System
// @Produce plain
// @Success 200 {string} string "Prometheus exposition"
// @Router /metrics [get]
func (h *MetricsHandler) Metrics(c *gin.Context) {
	h.handler.ServeHTTP(c.Writer, c.Request)
}
