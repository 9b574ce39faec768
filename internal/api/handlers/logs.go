package handlers

import (
	"errors"

	"github.com/dhima/synclog/internal/api/response"
	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AllCategories is the category query value that disables category filtering.
const AllCategories = "*"

// LogHandler serves stored log records.
type LogHandler struct {
	logger   logging.Logger
	service  LogService
	registry LogTypeRegistry
}

// NewLogHandler creates a new log handler.
func NewLogHandler(logger logging.Logger, service LogService, registry LogTypeRegistry) *LogHandler {
	return &LogHandler{
		logger:   logger.With(zap.String("handler", "logs")),
		service:  service,
		registry: registry,
	}
}

// ListLogs godoc
// @Summary List log records for an object
// @Description Returns one page of log records attached to a parent object, newest first. Pages hold 10 records.
// @Tags Logs
// @Produce json
// @Param object_id query int true "Parent object ID" minimum(0)
// @Param category query string false "Log category; defaults to the manager's category, * includes every category"
// @Param page query int false "Page number" default(1) minimum(1)
// @Success 200 {object} models.LogListResponse
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters or unknown category"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	var query models.ListLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("invalid list logs query",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid query parameters", err.Error())
		return
	}
	category, ok := h.resolveCategory(c, query.Category)
	if !ok {
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}

	ctx := c.Request.Context()
	records, err := h.service.GetLogs(ctx, query.ObjectID, category, query.Page)
	if h.handleStoreError(c, err, "list logs") {
		return
	}
	total, err := h.service.GetLogCount(ctx, query.ObjectID, category, nil)
	if h.handleStoreError(c, err, "count logs") {
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + logs.DefaultPageSize - 1) / logs.DefaultPageSize)
	}

	response.OK(c, models.LogListResponse{
		Logs: records,
		Pagination: models.Pagination{
			CurrentPage:  query.Page,
			PageSize:     logs.DefaultPageSize,
			TotalPages:   totalPages,
			TotalRecords: total,
		},
	})
}

// CountLogs godoc
// @Summary Count log records for an object
// @Description Counts records attached to a parent object, optionally restricted by category and one meta key/value pair.
// @Tags Logs
// @Produce json
// @Param object_id query int true "Parent object ID" minimum(0)
// @Param category query string false "Log category; defaults to the manager's category, * includes every category"
// @Param meta_key query string false "Meta key to match"
// @Param meta_value query string false "Meta value to match; requires meta_key"
// @Success 200 {object} models.LogCountResponse
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters or unknown category"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/logs/count [get]
func (h *LogHandler) CountLogs(c *gin.Context) {
	var query models.CountLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("invalid count logs query",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid query parameters", err.Error())
		return
	}
	if query.MetaKey == "" && query.MetaValue != "" {
		response.BadRequest(c, "invalid query parameters", "meta_value requires meta_key")
		return
	}
	category, ok := h.resolveCategory(c, query.Category)
	if !ok {
		return
	}

	var extra models.MetaFilter
	if query.MetaKey != "" {
		extra = models.MetaFilter{{Key: query.MetaKey, Value: query.MetaValue}}
	}

	count, err := h.service.GetLogCount(c.Request.Context(), query.ObjectID, category, extra)
	if h.handleStoreError(c, err, "count logs") {
		return
	}

	response.OK(c, models.LogCountResponse{
		ObjectID: query.ObjectID,
		Category: category,
		Count:    count,
	})
}

// ListLogTypes godoc
// @Summary List known log categories
// @Description Returns the base log types plus every category contributed by registered integrations.
// @Tags Logs
// @Produce json
// @Success 200 {array} string
// @Router /api/v1/log-types [get]
func (h *LogHandler) ListLogTypes(c *gin.Context) {
	response.OK(c, h.registry.LogTypes())
}

// resolveCategory maps the category query value to the filter handed to the service.
// Omitted means the manager's own category and AllCategories means no filter.
func (h *LogHandler) resolveCategory(c *gin.Context, category string) (string, bool) {
	switch category {
	case "":
		return h.service.Category(), true
	case AllCategories:
		return "", true
	}
	if h.registry.IsLogType(category) {
		return category, true
	}
	h.logger.Warn("unknown log category requested",
		zap.String("category", category),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.BadRequest(c, "unknown log category", map[string]interface{}{
		"category": category,
		"known":    h.registry.LogTypes(),
	})
	return "", false
}

func (h *LogHandler) handleStoreError(c *gin.Context, err error, action string) bool {
	if err == nil {
		return false
	}
	var storeErr *logs.StoreError
	if errors.As(err, &storeErr) {
		h.logger.Error("log store failure",
			zap.String("action", action),
			zap.String("operation", storeErr.Op),
			zap.Error(storeErr.Err),
			zap.String("request_id", response.GetRequestID(c)),
		)
	} else {
		h.logger.Error("failed to "+action,
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
	}
	response.InternalServerError(c, "failed to "+action)
	return true
}
