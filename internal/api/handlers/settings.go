package handlers

import (
	"errors"

	"github.com/dhima/synclog/internal/api/response"
	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/settings"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler exposes the logging settings.
type SettingsHandler struct {
	logger  logging.Logger
	service SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(logger logging.Logger, service SettingsService) *SettingsHandler {
	return &SettingsHandler{
		logger:  logger.With(zap.String("handler", "settings")),
		service: service,
	}
}

// GetSettings godoc
// @Summary Get logging settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.LoggingSettings
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, h.service.Snapshot(c.Request.Context()))
}

// UpdateSettings godoc
// @Summary Update logging settings
// @Description Partial update: only keys present in the body are written. logging_enable and statuses_to_log are read once when the log manager starts, so changes to them take effect on ingest only after the API and pruner restart. The other keys apply on the next read.
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.LoggingSettings true "Settings to change"
// @Success 200 {object} models.LoggingSettings
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		response.BadRequest(c, "invalid request body", "body is required")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), raw)
	if err != nil {
		var vErr settings.ValidationError
		if errors.As(err, &vErr) {
			h.logger.Warn("settings validation failed",
				zap.Error(err),
				zap.String("request_id", response.GetRequestID(c)),
			)
			response.BadRequest(c, "settings validation failed", vErr.Details)
			return
		}
		h.logger.Error("failed to update settings",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "failed to update settings")
		return
	}

	h.logger.Info("settings updated", zap.String("request_id", response.GetRequestID(c)))
	response.OK(c, updated)
}
