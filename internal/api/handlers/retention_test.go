package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/models"
	"github.com/dhima/synclog/internal/testutil/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPolicy_WhenManagerOverridesPruning_ThenReportsEffectivePolicy(t *testing.T) {
	// Arrange
	settings := fakes.EnabledSettings([]string{"error"}, nil)
	settings.Values[logs.KeyPruneLogs] = "1"
	settings.Values[logs.KeyLogsHowOld] = "30 days"
	f := newAPIFixture(t, settings)

	// Act
	w := f.do(http.MethodGet, "/api/v1/retention", nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var policy models.RetentionPolicyResponse
	decodeData(t, w, &policy)
	assert.True(t, policy.Enabled)
	assert.Equal(t, "30 days ago", policy.Age)
	require.NotNil(t, policy.Cutoff)
	assert.True(t, policy.Cutoff.Equal(testNow().AddDate(0, 0, -30)))
	assert.Equal(t, "salesforce", policy.Filter.Category)
	assert.Equal(t, 100, policy.Filter.Limit)
	require.NotNil(t, policy.NextRun)
	assert.True(t, policy.NextRun.Equal(time.Date(2025, 11, 5, 11, 0, 0, 0, time.UTC)))
}

func TestGetPolicy_WhenLoggingDisabled_ThenPruningStaysOff(t *testing.T) {
	settings := fakes.NewFakeSettings()
	settings.Values[logs.KeyPruneLogs] = "1"
	f := newAPIFixture(t, settings)

	w := f.do(http.MethodGet, "/api/v1/retention", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var policy models.RetentionPolicyResponse
	decodeData(t, w, &policy)
	assert.False(t, policy.Enabled)
	assert.Equal(t, "2 weeks ago", policy.Age)
	assert.Empty(t, policy.Filter.Category)
}
