package logs

import (
	"context"

	"github.com/dhima/synclog/internal/models"
)

// RecordStore defines the persistence the Log Manager needs.
type RecordStore interface {
	CreateRecord(ctx context.Context, record *models.LogRecord) (int64, error)
	ListRecords(ctx context.Context, query models.RecordQuery) ([]models.LogRecord, error)
	CountRecords(ctx context.Context, query models.RecordQuery) (int64, error)
}

// SettingsProvider resolves configuration by key. Missing keys resolve to the default;
// implementations never surface lookup failures.
type SettingsProvider interface {
	GetString(ctx context.Context, key, def string) string
	GetList(ctx context.Context, key string, def []string) []string
}

// RetentionHooks is the override surface exposed by the retention job. Each registered
// function receives the current value and returns the value to use.
type RetentionHooks interface {
	RegisterLogTypes(fn func(types []string) []string)
	RegisterPruneEnabled(fn func(current bool) bool)
	RegisterPruneAge(fn func(current string) string)
	RegisterPruneFilter(fn func(filter models.PruneFilter) models.PruneFilter)
}
