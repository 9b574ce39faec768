package logs

import (
	"context"
	"slices"
	"strconv"

	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/metrics"
	"github.com/dhima/synclog/internal/models"
	"go.uber.org/zap"
)

// Setting keys read by the manager. Providers may namespace them.
const (
	KeyLoggingEnable = "logging_enable"
	KeyStatusesToLog = "statuses_to_log"
	KeyTriggersToLog = "triggers_to_log"
	KeyPruneLogs     = "prune_logs"
	KeyLogsHowOld    = "logs_how_old"
)

const (
	// DefaultCategory tags records written by this integration.
	DefaultCategory = "salesforce"
	// DefaultPageSize is the number of records GetLogs returns per page.
	DefaultPageSize = 10
	// TriggerAny bypasses the triggers_to_log filter.
	TriggerAny = 0
)

// Event is a candidate log entry passed to Setup.
type Event struct {
	Title    string
	Message  string
	Trigger  int
	ParentID int64
	Status   string
}

// Manager decides whether events are persisted and biases the retention job toward its
// own category.
type Manager struct {
	store    RecordStore
	settings SettingsProvider
	logger   logging.Logger
	category string

	enabled       bool
	statusesToLog []string
}

// Option customises a Manager.
type Option func(*Manager)

// WithCategory overrides DefaultCategory.
func WithCategory(category string) Option {
	return func(m *Manager) {
		if category != "" {
			m.category = category
		}
	}
}

// NewManager snapshots logging_enable and statuses_to_log and, when logging is enabled,
// registers the retention overrides on hooks. Construct once per process: every call
// registers again.
func NewManager(ctx context.Context, store RecordStore, settings SettingsProvider, hooks RetentionHooks, logger logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		settings: settings,
		category: DefaultCategory,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logger.With(zap.String("component", "log_manager"), zap.String("category", m.category))

	m.enabled = settings.GetString(ctx, KeyLoggingEnable, "") == "1"
	m.statusesToLog = settings.GetList(ctx, KeyStatusesToLog, nil)

	if m.enabled && hooks != nil {
		hooks.RegisterLogTypes(m.SetLogTypes)
		hooks.RegisterPruneEnabled(m.SetPruneOption)
		hooks.RegisterPruneAge(m.SetPruneAge)
		hooks.RegisterPruneFilter(m.SetPruneArgs)
	}

	m.logger.Info("log manager initialised",
		zap.Bool("enabled", m.enabled),
		zap.Strings("statuses_to_log", m.statusesToLog))

	return m
}

// Category returns the tag applied to records written by Add.
func (m *Manager) Category() string { return m.category }

// Enabled reports the logging_enable snapshot taken at construction.
func (m *Manager) Enabled() bool { return m.enabled }

// Setup writes ev when logging is enabled, its status is in statuses_to_log and its
// trigger is in triggers_to_log (or is TriggerAny). Filtered events and store failures
// are not returned to the caller; failures are logged and counted.
func (m *Manager) Setup(ctx context.Context, ev Event) (int64, bool) {
	if reason := m.admit(ctx, ev); reason != SkipNone {
		metrics.SetupSkipped.WithLabelValues(string(reason)).Inc()
		m.logger.Debug("event not logged",
			zap.String("reason", string(reason)),
			zap.String("status", ev.Status),
			zap.Int("trigger", ev.Trigger),
			zap.Int64("parent_id", ev.ParentID))
		return 0, false
	}

	id, err := m.Add(ctx, ev.Title, ev.Message, ev.ParentID)
	if err != nil {
		m.logger.Error("failed to write log record",
			zap.Int64("parent_id", ev.ParentID),
			zap.String("title", ev.Title),
			zap.Error(err))
		return 0, false
	}
	return id, true
}

func (m *Manager) admit(ctx context.Context, ev Event) SkipReason {
	if !m.enabled {
		return SkipDisabled
	}
	if !slices.Contains(m.statusesToLog, ev.Status) {
		return SkipStatus
	}
	if ev.Trigger == TriggerAny {
		return SkipNone
	}
	triggers := m.settings.GetList(ctx, KeyTriggersToLog, nil)
	if !slices.Contains(triggers, strconv.Itoa(ev.Trigger)) {
		return SkipTrigger
	}
	return SkipNone
}

// Add stores a record in the manager's category and returns its id.
func (m *Manager) Add(ctx context.Context, title, message string, parentID int64) (int64, error) {
	return m.AddWithCategory(ctx, title, message, parentID, m.category)
}

// AddWithCategory stores a record under category; an empty category uses the manager's.
func (m *Manager) AddWithCategory(ctx context.Context, title, message string, parentID int64, category string) (int64, error) {
	return m.InsertLog(ctx, models.LogRecord{
		Title:    title,
		Message:  message,
		ParentID: parentID,
		Category: category,
	})
}

// InsertLog stores a fully-formed record, including optional meta values.
func (m *Manager) InsertLog(ctx context.Context, record models.LogRecord) (int64, error) {
	if record.Category == "" {
		record.Category = m.category
	}
	record.ID = 0

	id, err := m.store.CreateRecord(ctx, &record)
	if err != nil {
		metrics.StoreFailures.WithLabelValues("create").Inc()
		return 0, &StoreError{Op: "create", Err: err}
	}

	metrics.RecordsCreated.WithLabelValues(record.Category).Inc()
	m.logger.Debug("log record created",
		zap.Int64("id", id),
		zap.Int64("parent_id", record.ParentID),
		zap.String("record_category", record.Category))
	return id, nil
}

// GetLogs returns one page of records for objectID, newest first. An empty category
// matches every category. No matches yields an empty slice and a nil error.
func (m *Manager) GetLogs(ctx context.Context, objectID int64, category string, page int) ([]models.LogRecord, error) {
	if page < 1 {
		page = 1
	}
	records, err := m.store.ListRecords(ctx, models.RecordQuery{
		ParentID: objectID,
		Category: category,
		Page:     page,
		PageSize: DefaultPageSize,
	})
	if err != nil {
		metrics.StoreFailures.WithLabelValues("query").Inc()
		return nil, &StoreError{Op: "query", Err: err}
	}
	if records == nil {
		records = []models.LogRecord{}
	}
	return records, nil
}

// GetLogCount counts records for objectID. extra is handed to the store unchanged.
func (m *Manager) GetLogCount(ctx context.Context, objectID int64, category string, extra models.MetaFilter) (int64, error) {
	count, err := m.store.CountRecords(ctx, models.RecordQuery{
		ParentID: objectID,
		Category: category,
		Meta:     extra,
	})
	if err != nil {
		metrics.StoreFailures.WithLabelValues("count").Inc()
		return 0, &StoreError{Op: "count", Err: err}
	}
	if count < 0 {
		count = 0
	}
	return count, nil
}

// SetLogTypes contributes the manager's category to the known log types.
func (m *Manager) SetLogTypes(types []string) []string {
	return append(types, m.category)
}

// SetPruneOption forces pruning on when prune_logs is "1".
func (m *Manager) SetPruneOption(current bool) bool {
	if m.settings.GetString(context.Background(), KeyPruneLogs, "") == "1" {
		return true
	}
	return current
}

// SetPruneAge returns "<logs_how_old> ago" when the setting is non-empty.
func (m *Manager) SetPruneAge(current string) string {
	if value := m.settings.GetString(context.Background(), KeyLogsHowOld, ""); value != "" {
		return value + " ago"
	}
	return current
}

// SetPruneArgs restricts pruning to the manager's category.
func (m *Manager) SetPruneArgs(filter models.PruneFilter) models.PruneFilter {
	filter.Category = m.category
	return filter
}
