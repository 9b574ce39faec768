package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/internal/logs"
	"github.com/dhima/synclog/internal/models"
	"github.com/dhima/synclog/internal/retention"
	"go.uber.org/zap"
)

// DefaultPrefix namespaces every option this service reads or writes.
const DefaultPrefix = "object_sync_"

// Service reads and writes logging settings in the options store. Reads never fail: a
// missing option or a store error yields the caller's default.
type Service struct {
	store  OptionStore
	prefix string
	logger logging.Logger
}

// NewService creates a settings service. An empty prefix uses DefaultPrefix.
func NewService(store OptionStore, prefix string, logger logging.Logger) *Service {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Service{
		store:  store,
		prefix: prefix,
		logger: logger.With(zap.String("component", "settings")),
	}
}

func (s *Service) optionName(key string) string {
	return s.prefix + key
}

func (s *Service) lookup(ctx context.Context, key string) (string, bool) {
	value, found, err := s.store.GetOption(ctx, s.optionName(key))
	if err != nil {
		s.logger.Warn("failed to read setting, using default",
			zap.String("key", key),
			zap.Error(err))
		return "", false
	}
	return value, found
}

// GetString returns the stored value for key, or def when absent.
func (s *Service) GetString(ctx context.Context, key, def string) string {
	if value, found := s.lookup(ctx, key); found {
		return value
	}
	return def
}

// GetList returns the stored list for key. Values are stored as JSON arrays; a plain
// comma-separated string is accepted too. Absent or malformed values yield def.
func (s *Service) GetList(ctx context.Context, key string, def []string) []string {
	raw, found := s.lookup(ctx, key)
	if !found {
		return def
	}
	list, err := parseList(raw)
	if err != nil {
		s.logger.Warn("malformed list setting, using default",
			zap.String("key", key),
			zap.Error(err))
		return def
	}
	return list
}

func parseList(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []interface{}
		dec := json.NewDecoder(strings.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case string:
				list = append(list, v)
			case json.Number:
				list = append(list, v.String())
			default:
				return nil, fmt.Errorf("unsupported list item %v", item)
			}
		}
		return list, nil
	}

	parts := strings.Split(trimmed, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list, nil
}

// Snapshot returns the current logging settings.
func (s *Service) Snapshot(ctx context.Context) models.LoggingSettings {
	return models.LoggingSettings{
		LoggingEnable: s.GetString(ctx, logs.KeyLoggingEnable, ""),
		StatusesToLog: s.GetList(ctx, logs.KeyStatusesToLog, []string{}),
		TriggersToLog: s.GetList(ctx, logs.KeyTriggersToLog, []string{}),
		PruneLogs:     s.GetString(ctx, logs.KeyPruneLogs, ""),
		LogsHowOld:    s.GetString(ctx, logs.KeyLogsHowOld, ""),
	}
}

// Update validates raw as a partial settings document and stores the keys it contains.
// It returns the settings as they are after the write.
func (s *Service) Update(ctx context.Context, raw []byte) (models.LoggingSettings, error) {
	if err := validateUpdate(raw); err != nil {
		return models.LoggingSettings{}, err
	}

	values, err := encodeUpdate(raw)
	if err != nil {
		return models.LoggingSettings{}, err
	}
	if age := values[logs.KeyLogsHowOld]; age != "" {
		if _, err := retention.ParseAge(age, time.Now()); err != nil {
			return models.LoggingSettings{}, ValidationError{
				msg:     "settings validation failed",
				Details: []string{logs.KeyLogsHowOld + ": " + err.Error()},
			}
		}
	}

	named := make(map[string]string, len(values))
	for key, value := range values {
		named[s.optionName(key)] = value
	}
	if err := s.store.SetOptions(ctx, named); err != nil {
		return models.LoggingSettings{}, fmt.Errorf("update settings: %w", err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	s.logger.Info("settings updated", zap.Strings("keys", keys))

	return s.Snapshot(ctx), nil
}

// encodeUpdate maps a validated document to stored option values. Lists are stored as
// JSON arrays of strings.
func encodeUpdate(raw []byte) (map[string]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, NewValidationError("settings document is not an object")
	}

	values := make(map[string]string, len(doc))
	for key, field := range doc {
		switch key {
		case logs.KeyLoggingEnable, logs.KeyPruneLogs, logs.KeyLogsHowOld:
			var v string
			if err := json.Unmarshal(field, &v); err != nil {
				return nil, NewValidationError("%s must be a string", key)
			}
			values[key] = strings.TrimSpace(v)
		case logs.KeyStatusesToLog, logs.KeyTriggersToLog:
			var items []json.RawMessage
			if err := json.Unmarshal(field, &items); err != nil {
				return nil, NewValidationError("%s must be an array", key)
			}
			list := make([]string, 0, len(items))
			for _, item := range items {
				var str string
				if err := json.Unmarshal(item, &str); err == nil {
					list = append(list, str)
					continue
				}
				list = append(list, strings.TrimSpace(string(item)))
			}
			encoded, err := json.Marshal(list)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", key, err)
			}
			values[key] = string(encoded)
		default:
			return nil, NewValidationError("unknown setting %s", key)
		}
	}
	return values, nil
}
