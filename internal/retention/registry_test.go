package retention

import (
	"context"
	"testing"
	"time"

	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/models"
	"github.com/dhima/synclog/internal/testutil/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ logs.RetentionHooks = (*Registry)(nil)

func TestRegistry_WhenNothingRegistered_ThenReturnsDefaults(t *testing.T) {
	r := NewRegistry(Defaults{})
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"error", "event"}, r.LogTypes())
	assert.False(t, r.PruneEnabled())
	assert.Equal(t, "2 weeks ago", r.PruneAge())
	assert.Equal(t, models.PruneFilter{Before: before, Limit: 100}, r.PruneFilter(before))
}

func TestRegistry_WhenOverridesChained_ThenAppliedInRegistrationOrder(t *testing.T) {
	// Arrange
	r := NewRegistry(Defaults{Age: "1 year ago", BatchSize: 10})
	r.RegisterPruneAge(func(current string) string { return current + " first" })
	r.RegisterPruneAge(func(current string) string { return current + " second" })
	r.RegisterPruneEnabled(func(bool) bool { return true })
	r.RegisterPruneEnabled(func(current bool) bool { return !current })

	// Act & Assert
	assert.Equal(t, "1 year ago first second", r.PruneAge())
	assert.False(t, r.PruneEnabled())
}

func TestRegistry_LogTypes_WhenDuplicatesContributed_ThenDeduplicates(t *testing.T) {
	// Arrange
	r := NewRegistry(Defaults{})
	add := func(types []string) []string { return append(types, "salesforce") }
	r.RegisterLogTypes(add)
	r.RegisterLogTypes(add)
	r.RegisterLogTypes(func(types []string) []string { return append(types, "error", "") })

	// Act
	types := r.LogTypes()

	// Assert
	assert.Equal(t, []string{"error", "event", "salesforce"}, types)
	assert.True(t, r.IsLogType("salesforce"))
	assert.False(t, r.IsLogType("hubspot"))
}

func TestRegistry_LogTypes_WhenOverrideMutatesInput_ThenBaseTypesUnchanged(t *testing.T) {
	r := NewRegistry(Defaults{})
	r.RegisterLogTypes(func(types []string) []string {
		types[0] = "mutated"
		return types
	})

	_ = r.LogTypes()

	assert.Equal(t, []string{"error", "event"}, BaseLogTypes)
}

func TestRegistry_WithLogManager_WhenPruneSettingsSet_ThenPolicyFollowsManager(t *testing.T) {
	// Arrange
	settings := fakes.EnabledSettings([]string{"error"}, nil)
	settings.Values[logs.KeyPruneLogs] = "1"
	settings.Values[logs.KeyLogsHowOld] = "30 days"
	r := NewRegistry(Defaults{BatchSize: 50})
	logs.NewManager(context.Background(), fakes.NewFakeRecordStore(nil), settings, r, logging.NewNoOpLogger())
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Act
	filter := r.PruneFilter(before)

	// Assert
	assert.True(t, r.PruneEnabled())
	assert.Equal(t, "30 days ago", r.PruneAge())
	assert.Equal(t, []string{"error", "event", "salesforce"}, r.LogTypes())
	require.Equal(t, "salesforce", filter.Category)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, before, filter.Before)
}

func TestRegistry_WithLogManager_WhenSettingsChangeLater_ThenOverridesReadLiveValues(t *testing.T) {
	// Arrange
	settings := fakes.EnabledSettings([]string{"error"}, nil)
	r := NewRegistry(Defaults{})
	logs.NewManager(context.Background(), fakes.NewFakeRecordStore(nil), settings, r, logging.NewNoOpLogger())
	require.False(t, r.PruneEnabled())
	require.Equal(t, "2 weeks ago", r.PruneAge())

	// Act
	settings.Set(logs.KeyPruneLogs, "1")
	settings.Set(logs.KeyLogsHowOld, "3 months")

	// Assert
	assert.True(t, r.PruneEnabled())
	assert.Equal(t, "3 months ago", r.PruneAge())
}

func TestRegistry_WithDisabledLogManager_ThenDefaultsRemain(t *testing.T) {
	settings := fakes.NewFakeSettings()
	settings.Values[logs.KeyPruneLogs] = "1"
	r := NewRegistry(Defaults{})

	logs.NewManager(context.Background(), fakes.NewFakeRecordStore(nil), settings, r, logging.NewNoOpLogger())

	assert.False(t, r.PruneEnabled())
	assert.Equal(t, []string{"error", "event"}, r.LogTypes())
	assert.Empty(t, r.PruneFilter(time.Time{}).Category)
}
