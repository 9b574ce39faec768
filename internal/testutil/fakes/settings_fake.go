package fakes

import (
	"context"
	"sync"
)

// FakeSettings is an in-memory settings provider that counts reads.
type FakeSettings struct {
	mu     sync.Mutex
	Values map[string]string
	Lists  map[string][]string
	Reads  int
}

func NewFakeSettings() *FakeSettings {
	return &FakeSettings{
		Values: make(map[string]string),
		Lists:  make(map[string][]string),
	}
}

// EnabledSettings is a convenience constructor for the common "logging on" case.
func EnabledSettings(statuses []string, triggers []string) *FakeSettings {
	s := NewFakeSettings()
	s.Values["logging_enable"] = "1"
	s.Lists["statuses_to_log"] = statuses
	if triggers != nil {
		s.Lists["triggers_to_log"] = triggers
	}
	return s
}

func (f *FakeSettings) GetString(_ context.Context, key, def string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reads++
	if v, ok := f.Values[key]; ok {
		return v
	}
	return def
}

func (f *FakeSettings) GetList(_ context.Context, key string, def []string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reads++
	if v, ok := f.Lists[key]; ok {
		return v
	}
	return def
}

// Set changes a scalar value after construction.
func (f *FakeSettings) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Values[key] = value
}
