package handlers

import (
	"encoding/json"

	"github.com/dhima/synclog/internal/api/response"
	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const logEventSchema = `{
	"type": "object",
	"required": ["title", "status"],
	"additionalProperties": false,
	"properties": {
		"title": {"type": "string", "maxLength": 255},
		"message": {"type": "string"},
		"trigger": {"type": "integer", "minimum": 0, "maximum": 2147483647},
		"parent_id": {"type": "integer", "minimum": 0},
		"status": {"type": "string", "minLength": 1, "maxLength": 64}
	}
}`

var logEventSchemaLoader = gojsonschema.NewStringLoader(logEventSchema)

// IngestHandler accepts sync events and passes them through the log manager's filters.
type IngestHandler struct {
	logger  logging.Logger
	service LogService
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(logger logging.Logger, service LogService) *IngestHandler {
	return &IngestHandler{
		logger:  logger.With(zap.String("handler", "ingest")),
		service: service,
	}
}

// LogEvent godoc
// @Summary Submit a sync event
// @Description Validates the event and hands it to the log manager. The event is stored only when logging is enabled and its status and trigger are selected in settings; otherwise it is accepted and dropped.
// @Tags Logs
// @Accept json
// @Produce json
// @Param event body models.LogEventRequest true "Sync event"
// @Success 202 {object} response.SuccessResponse{data=models.LogEventResponse} "Event accepted"
// @Failure 400 {object} response.ErrorResponse "Invalid body or schema validation failed"
// @Router /api/v1/logs/events [post]
func (h *IngestHandler) LogEvent(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || len(raw) == 0 {
		response.BadRequest(c, "invalid request body", "body is required")
		return
	}

	result, err := gojsonschema.Validate(logEventSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		h.logger.Warn("invalid log event payload",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}
	if !result.Valid() {
		fieldErrors := make([]response.FieldError, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			fieldErrors = append(fieldErrors, response.FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		h.logger.Warn("log event schema validation failed",
			zap.Int("error_count", len(fieldErrors)),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.FieldErrors(c, fieldErrors)
		return
	}

	var req models.LogEventRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	id, logged := h.service.Setup(c.Request.Context(), logs.Event{
		Title:    req.Title,
		Message:  req.Message,
		Trigger:  req.Trigger,
		ParentID: req.ParentID,
		Status:   req.Status,
	})

	h.logger.Info("log event processed",
		zap.Bool("logged", logged),
		zap.Int64("id", id),
		zap.Int64("parent_id", req.ParentID),
		zap.String("status", req.Status),
		zap.String("request_id", response.GetRequestID(c)),
	)

	message := "event logged"
	if !logged {
		message = "event not logged"
	}
	response.Accepted(c, models.LogEventResponse{Logged: logged, ID: id}, message)
}
