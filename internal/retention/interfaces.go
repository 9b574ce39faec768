package retention

import (
	"context"

	"github.com/dhima/synclog/internal/models"
	platformEvents "github.com/dhima/synclog/platform/events"
)

// RecordPruner deletes up to filter.Limit records older than filter.Before.
type RecordPruner interface {
	DeleteRecords(ctx context.Context, filter models.PruneFilter) (int64, error)
}

// EventPublisher announces completed prune runs.
type EventPublisher interface {
	Publish(ctx context.Context, event platformEvents.PruneEvent) error
}
