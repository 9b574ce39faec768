package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/models"
	"github.com/dhima/synclog/internal/testutil/fakes"
	"github.com/dhima/synclog/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineNow() time.Time { return time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC) }

type engineFixture struct {
	engine    *Engine
	registry  *Registry
	store     *fakes.FakeRecordStore
	publisher *fakes.FakePublisher
	locker    *fakes.FakeLocker
	settings  *fakes.FakeSettings
}

// newEngineFixture wires a log manager with pruning on ("7 days") into a registry.
func newEngineFixture(t *testing.T, batchSize int) *engineFixture {
	t.Helper()
	clk := clock.NewFixed(engineNow())
	settings := fakes.EnabledSettings([]string{"error"}, nil)
	settings.Values[logs.KeyPruneLogs] = "1"
	settings.Values[logs.KeyLogsHowOld] = "7 days"

	store := fakes.NewFakeRecordStore(clk)
	registry := NewRegistry(Defaults{BatchSize: batchSize})
	logs.NewManager(context.Background(), store, settings, registry, logging.NewNoOpLogger())

	publisher := &fakes.FakePublisher{}
	locker := &fakes.FakeLocker{}
	engine, err := NewEngine(Config{Schedule: "@hourly"}, registry, store, publisher, locker, logging.NewNoOpLogger(), clk)
	require.NoError(t, err)

	return &engineFixture{
		engine:    engine,
		registry:  registry,
		store:     store,
		publisher: publisher,
		locker:    locker,
		settings:  settings,
	}
}

func (f *engineFixture) seed(category string, age time.Duration, n int) {
	for i := 0; i < n; i++ {
		f.store.Seed(models.LogRecord{
			Title:     "Success: Update Contact",
			ParentID:  17,
			Category:  category,
			CreatedAt: engineNow().Add(-age),
		})
	}
}

func TestRunOnce_WhenOldRecordsExist_ThenDeletesInBatchesAndPublishes(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, 2)
	f.seed("salesforce", 10*24*time.Hour, 5)
	f.seed("salesforce", 24*time.Hour, 1)
	f.seed("error", 30*24*time.Hour, 1)

	// Act
	result, err := f.engine.RunOnce(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusPruned, result.Status)
	assert.Equal(t, "salesforce", result.Category)
	assert.Equal(t, int64(5), result.Deleted)
	assert.Equal(t, 3, result.Batches)
	assert.Equal(t, engineNow().AddDate(0, 0, -7), result.Cutoff)

	remaining := f.store.Records()
	require.Len(t, remaining, 2)
	for _, r := range remaining {
		assert.True(t, r.Category == "error" || r.CreatedAt.After(result.Cutoff))
	}

	require.Len(t, f.publisher.Events, 1)
	event := f.publisher.Events[0]
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "salesforce", event.Category)
	assert.Equal(t, int64(5), event.Deleted)
	assert.Equal(t, engineNow(), event.PrunedAt)
	assert.Equal(t, 1, f.locker.Released)
}

func TestRunOnce_WhenBatchExactlyFull_ThenRunsOneMoreBatch(t *testing.T) {
	f := newEngineFixture(t, 2)
	f.seed("salesforce", 10*24*time.Hour, 4)

	result, err := f.engine.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Deleted)
	assert.Equal(t, 3, result.Batches)
	assert.Equal(t, 3, f.store.DeleteCalls)
}

func TestRunOnce_WhenNothingToDelete_ThenDoesNotPublish(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.seed("salesforce", time.Hour, 3)

	result, err := f.engine.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusPruned, result.Status)
	assert.Zero(t, result.Deleted)
	assert.Equal(t, 1, result.Batches)
	assert.Empty(t, f.publisher.Events)
	assert.Len(t, f.store.Records(), 3)
}

func TestRunOnce_WhenPruningDisabled_ThenSkipsWithoutDeleting(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, 100)
	f.settings.Set(logs.KeyPruneLogs, "0")
	f.seed("salesforce", 30*24*time.Hour, 2)

	// Act
	result, err := f.engine.RunOnce(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, result.Status)
	assert.Zero(t, f.store.DeleteCalls)
	assert.Len(t, f.store.Records(), 2)
	assert.Equal(t, 1, f.locker.Released)
}

func TestRunOnce_WhenLockHeldElsewhere_ThenSkips(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.locker.Held = true
	f.seed("salesforce", 30*24*time.Hour, 2)

	result, err := f.engine.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusLockHeld, result.Status)
	assert.Zero(t, f.store.DeleteCalls)
	assert.Zero(t, f.locker.Acquired)
}

func TestRunOnce_WhenLockErrors_ThenReturnsError(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.locker.Err = errors.New("redis: connection refused")

	result, err := f.engine.RunOnce(context.Background())

	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Zero(t, f.store.DeleteCalls)
}

func TestRunOnce_WhenDeleteFails_ThenReturnsErrorAndReleasesLock(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.store.DeleteErr = fakes.ErrStoreDown
	f.seed("salesforce", 30*24*time.Hour, 2)

	result, err := f.engine.RunOnce(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, fakes.ErrStoreDown)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Empty(t, f.publisher.Events)
	assert.Equal(t, 1, f.locker.Released)
}

func TestRunOnce_WhenPublishFails_ThenRunStillSucceeds(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.publisher.FailNext = true
	f.seed("salesforce", 30*24*time.Hour, 2)

	result, err := f.engine.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Deleted)
	assert.Empty(t, f.publisher.Events)
}

func TestRunOnce_WhenAgeUnparseable_ThenFails(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.registry.RegisterPruneAge(func(string) string { return "whenever" })

	_, err := f.engine.RunOnce(context.Background())

	assert.ErrorIs(t, err, ErrInvalidAge)
	assert.Zero(t, f.store.DeleteCalls)
}

func TestRunOnce_WhenAgeOverflowsDuration_ThenDeletesNothing(t *testing.T) {
	// Arrange
	f := newEngineFixture(t, 100)
	f.settings.Set(logs.KeyLogsHowOld, "3000000 hours")
	f.seed("salesforce", time.Minute, 3)

	// Act
	result, err := f.engine.RunOnce(context.Background())

	// Assert
	assert.ErrorIs(t, err, ErrInvalidAge)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Zero(t, f.store.DeleteCalls)
	assert.Len(t, f.store.Records(), 3)
	assert.Empty(t, f.publisher.Events)
}

func TestRunOnce_WhenPublisherNil_ThenPrunesQuietly(t *testing.T) {
	f := newEngineFixture(t, 100)
	engine, err := NewEngine(Config{}, f.registry, f.store, nil, nil, logging.NewNoOpLogger(), clock.NewFixed(engineNow()))
	require.NoError(t, err)
	f.seed("salesforce", 30*24*time.Hour, 1)

	result, err := engine.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Deleted)
}

func TestNewEngine_WhenScheduleInvalid_ThenReturnsError(t *testing.T) {
	_, err := NewEngine(Config{Schedule: "every tuesday"}, NewRegistry(Defaults{}), fakes.NewFakeRecordStore(nil), nil, nil, logging.NewNoOpLogger(), nil)

	assert.Error(t, err)
}

func TestRun_WhenContextCancelled_ThenReturns(t *testing.T) {
	f := newEngineFixture(t, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.engine.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.store.DeleteCalls)
}

func TestPolicy_WhenManagerRegistered_ThenReportsEffectivePolicy(t *testing.T) {
	f := newEngineFixture(t, 100)

	policy := f.engine.Policy(engineNow())

	assert.True(t, policy.Enabled)
	assert.Equal(t, "7 days ago", policy.Age)
	require.NotNil(t, policy.Cutoff)
	assert.Equal(t, engineNow().AddDate(0, 0, -7), *policy.Cutoff)
	assert.Equal(t, "salesforce", policy.Filter.Category)
	assert.Equal(t, 100, policy.Filter.Limit)
	assert.Equal(t, "@hourly", policy.Schedule)
	require.NotNil(t, policy.NextRun)
	assert.Equal(t, engineNow().Add(time.Hour), *policy.NextRun)
}

func TestPolicyAt_WhenAgeInvalid_ThenOmitsCutoff(t *testing.T) {
	r := NewRegistry(Defaults{})
	r.RegisterPruneAge(func(string) string { return "eventually" })

	policy := PolicyAt(r, "@hourly", engineNow())

	assert.Nil(t, policy.Cutoff)
	assert.False(t, policy.Enabled)
}

func TestLocalLocker_WhenHeld_ThenSecondAttemptRefused(t *testing.T) {
	l := &LocalLocker{}

	release, ok, err := l.TryLock(context.Background(), LockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, again, err := l.TryLock(context.Background(), LockKey, time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	release()
	_, ok, _ = l.TryLock(context.Background(), LockKey, time.Minute)
	assert.True(t, ok)
}
