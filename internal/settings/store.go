package settings

import (
	"context"
)

// OptionStore defines the storage methods required by the settings service.
type OptionStore interface {
	GetOption(ctx context.Context, name string) (string, bool, error)
	SetOptions(ctx context.Context, values map[string]string) error
}
