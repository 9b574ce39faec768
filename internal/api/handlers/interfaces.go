package handlers

import (
	"context"
	"time"

	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/models"
)

// LogService is the subset of the log manager the API needs.
type LogService interface {
	Category() string
	Setup(ctx context.Context, ev logs.Event) (int64, bool)
	GetLogs(ctx context.Context, objectID int64, category string, page int) ([]models.LogRecord, error)
	GetLogCount(ctx context.Context, objectID int64, category string, extra models.MetaFilter) (int64, error)
}

// LogTypeRegistry reports the known log categories.
type LogTypeRegistry interface {
	LogTypes() []string
	IsLogType(category string) bool
}

// SettingsService reads and writes logging settings.
type SettingsService interface {
	Snapshot(ctx context.Context) models.LoggingSettings
	Update(ctx context.Context, raw []byte) (models.LoggingSettings, error)
}

// RetentionPolicy resolves the effective retention policy at a point in time.
type RetentionPolicy interface {
	Policy(now time.Time) models.RetentionPolicyResponse
}
