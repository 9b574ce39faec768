package retention

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/metrics"
	"github.com/dhima/synclog/internal/models"
	"github.com/dhima/synclog/pkg/clock"
	platformEvents "github.com/dhima/synclog/platform/events"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Run outcomes, also used as the prune_runs metric label.
const (
	StatusPruned   = "pruned"
	StatusDisabled = "disabled"
	StatusLockHeld = "lock_held"
	StatusFailed   = "failed"
)

const defaultMaxBatches = 1000

// Config controls when and how the engine prunes.
type Config struct {
	Schedule   string
	LockTTL    time.Duration
	MaxBatches int
}

// Result describes one prune run.
type Result struct {
	Status   string
	Category string
	Cutoff   time.Time
	Deleted  int64
	Batches  int
}

// Engine runs the prune routine on a cron schedule.
type Engine struct {
	cfg       Config
	registry  *Registry
	store     RecordPruner
	publisher EventPublisher
	locker    Locker
	logger    logging.Logger
	clock     clock.Clock
}

// NewEngine validates the schedule. publisher may be nil; a nil locker becomes a LocalLocker.
func NewEngine(cfg Config, registry *Registry, store RecordPruner, publisher EventPublisher, locker Locker, logger logging.Logger, clk clock.Clock) (*Engine, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "@hourly"
	}
	if _, err := ParseSchedule(cfg.Schedule); err != nil {
		return nil, err
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	if cfg.MaxBatches <= 0 {
		cfg.MaxBatches = defaultMaxBatches
	}
	if locker == nil {
		locker = &LocalLocker{}
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Engine{
		cfg:       cfg,
		registry:  registry,
		store:     store,
		publisher: publisher,
		locker:    locker,
		logger:    logger.With(zap.String("component", "retention_engine")),
		clock:     clk,
	}, nil
}

// Run prunes once immediately, then on every schedule tick until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	c := cron.New(cron.WithParser(scheduleParser), cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(e.cfg.Schedule, func() { e.tick(ctx) }); err != nil {
		return fmt.Errorf("schedule prune job: %w", err)
	}

	e.logger.Info("retention engine started", zap.String("schedule", e.cfg.Schedule))
	e.tick(ctx)
	c.Start()

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	e.logger.Info("retention engine stopped")
	return ctx.Err()
}

func (e *Engine) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := e.RunOnce(ctx); err != nil {
		e.logger.Error("prune run failed", zap.Error(err))
	}
}

// RunOnce executes a single prune pass under the lock.
func (e *Engine) RunOnce(ctx context.Context) (Result, error) {
	started := time.Now()
	defer func() { metrics.PruneDuration.Observe(time.Since(started).Seconds()) }()

	release, ok, err := e.locker.TryLock(ctx, LockKey, e.cfg.LockTTL)
	if err != nil {
		metrics.PruneRuns.WithLabelValues(StatusFailed).Inc()
		return Result{Status: StatusFailed}, err
	}
	if !ok {
		metrics.PruneRuns.WithLabelValues(StatusLockHeld).Inc()
		e.logger.Debug("prune lock held elsewhere, skipping run")
		return Result{Status: StatusLockHeld}, nil
	}
	defer release()

	if !e.registry.PruneEnabled() {
		metrics.PruneRuns.WithLabelValues(StatusDisabled).Inc()
		e.logger.Debug("pruning disabled, skipping run")
		return Result{Status: StatusDisabled}, nil
	}

	now := e.clock.Now()
	age := e.registry.PruneAge()
	cutoff, err := ParseAge(age, now)
	if err != nil {
		metrics.PruneRuns.WithLabelValues(StatusFailed).Inc()
		return Result{Status: StatusFailed}, err
	}

	filter := e.registry.PruneFilter(cutoff)
	result := Result{Status: StatusPruned, Category: filter.Category, Cutoff: filter.Before}

	for result.Batches < e.cfg.MaxBatches {
		if err := ctx.Err(); err != nil {
			return e.finish(ctx, result, err)
		}
		deleted, err := e.store.DeleteRecords(ctx, filter)
		result.Batches++
		result.Deleted += deleted
		if err != nil {
			return e.finish(ctx, result, fmt.Errorf("delete batch %d: %w", result.Batches, err))
		}
		if filter.Limit <= 0 || deleted < int64(filter.Limit) {
			break
		}
	}

	return e.finish(ctx, result, nil)
}

func (e *Engine) finish(ctx context.Context, result Result, runErr error) (Result, error) {
	label := result.Category
	if label == "" {
		label = "all"
	}
	metrics.PruneDeleted.WithLabelValues(label).Add(float64(result.Deleted))

	if result.Deleted > 0 && e.publisher != nil {
		event := platformEvents.PruneEvent{
			EventID:  uuid.New().String(),
			Category: result.Category,
			Cutoff:   result.Cutoff,
			Deleted:  result.Deleted,
			PrunedAt: e.clock.Now(),
		}
		if err := e.publisher.Publish(ctx, event); err != nil {
			e.logger.Warn("failed to publish prune event",
				zap.String("event_id", event.EventID),
				zap.Error(err))
		}
	}

	if runErr != nil {
		result.Status = StatusFailed
		metrics.PruneRuns.WithLabelValues(StatusFailed).Inc()
		if errors.Is(runErr, context.Canceled) {
			e.logger.Info("prune run interrupted", zap.Int64("deleted", result.Deleted))
		}
		return result, runErr
	}

	metrics.PruneRuns.WithLabelValues(StatusPruned).Inc()
	e.logger.Info("prune run completed",
		zap.String("prune_category", label),
		zap.Time("cutoff", result.Cutoff),
		zap.Int64("deleted", result.Deleted),
		zap.Int("batches", result.Batches))
	return result, nil
}

// Policy reports the effective retention policy as of now.
func (e *Engine) Policy(now time.Time) models.RetentionPolicyResponse {
	return PolicyAt(e.registry, e.cfg.Schedule, now)
}

// PolicyAt resolves the override chains without running anything.
func PolicyAt(registry *Registry, schedule string, now time.Time) models.RetentionPolicyResponse {
	policy := models.RetentionPolicyResponse{
		Enabled:  registry.PruneEnabled(),
		Age:      registry.PruneAge(),
		Schedule: schedule,
	}

	var before time.Time
	if cutoff, err := ParseAge(policy.Age, now); err == nil {
		before = cutoff
		policy.Cutoff = &cutoff
	}
	policy.Filter = registry.PruneFilter(before)

	if next, err := NextRun(schedule, now); err == nil {
		policy.NextRun = &next
	}
	return policy
}

// PolicyView resolves the policy for processes that do not run the engine.
type PolicyView struct {
	Registry *Registry
	Schedule string
}

func (v PolicyView) Policy(now time.Time) models.RetentionPolicyResponse {
	return PolicyAt(v.Registry, v.Schedule, now)
}
