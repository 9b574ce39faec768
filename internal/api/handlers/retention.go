package handlers

import (
	"github.com/dhima/synclog/internal/api/response"
	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/pkg/clock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RetentionHandler reports what the retention job would do now.
type RetentionHandler struct {
	logger logging.Logger
	policy RetentionPolicy
	clock  clock.Clock
}

func NewRetentionHandler(logger logging.Logger, policy RetentionPolicy, clk clock.Clock) *RetentionHandler {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &RetentionHandler{
		logger: logger.With(zap.String("handler", "retention")),
		policy: policy,
		clock:  clk,
	}
}

// GetPolicy godoc
// @Summary Get the effective retention policy
// @Description Resolves every registered override: whether pruning is on, the age and cutoff, the delete filter and the next scheduled run.
// @Tags Retention
// @Produce json
// @Success 200 {object} models.RetentionPolicyResponse
// @Router /api/v1/retention [get]
func (h *RetentionHandler) GetPolicy(c *gin.Context) {
	response.OK(c, h.policy.Policy(h.clock.Now()))
}
