package retention

import (
	"sync"
	"time"

	"github.com/dhima/synclog/internal/models"
)

// BaseLogTypes are the categories known before any override contributes its own.
var BaseLogTypes = []string{"error", "event"}

// Defaults seed the override chains.
type Defaults struct {
	Age       string
	BatchSize int
}

// Registry collects retention overrides. Each kind is a chain applied in registration
// order, every function receiving the previous function's result.
type Registry struct {
	mu           sync.RWMutex
	defaults     Defaults
	logTypes     []func([]string) []string
	pruneEnabled []func(bool) bool
	pruneAge     []func(string) string
	pruneFilter  []func(models.PruneFilter) models.PruneFilter
}

func NewRegistry(defaults Defaults) *Registry {
	if defaults.Age == "" {
		defaults.Age = "2 weeks ago"
	}
	if defaults.BatchSize <= 0 {
		defaults.BatchSize = 100
	}
	return &Registry{defaults: defaults}
}

func (r *Registry) RegisterLogTypes(fn func([]string) []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logTypes = append(r.logTypes, fn)
}

func (r *Registry) RegisterPruneEnabled(fn func(bool) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneEnabled = append(r.pruneEnabled, fn)
}

func (r *Registry) RegisterPruneAge(fn func(string) string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneAge = append(r.pruneAge, fn)
}

func (r *Registry) RegisterPruneFilter(fn func(models.PruneFilter) models.PruneFilter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneFilter = append(r.pruneFilter, fn)
}

// LogTypes returns the known categories with duplicates removed, first occurrence wins.
func (r *Registry) LogTypes() []string {
	r.mu.RLock()
	chain := r.logTypes
	r.mu.RUnlock()

	types := append([]string(nil), BaseLogTypes...)
	for _, fn := range chain {
		types = fn(types)
	}

	seen := make(map[string]struct{}, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		if _, dup := seen[t]; dup || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// IsLogType reports whether category is currently known.
func (r *Registry) IsLogType(category string) bool {
	for _, t := range r.LogTypes() {
		if t == category {
			return true
		}
	}
	return false
}

// PruneEnabled starts from false.
func (r *Registry) PruneEnabled() bool {
	r.mu.RLock()
	chain := r.pruneEnabled
	r.mu.RUnlock()

	enabled := false
	for _, fn := range chain {
		enabled = fn(enabled)
	}
	return enabled
}

// PruneAge starts from the configured default age.
func (r *Registry) PruneAge() string {
	r.mu.RLock()
	chain := r.pruneAge
	age := r.defaults.Age
	r.mu.RUnlock()

	for _, fn := range chain {
		age = fn(age)
	}
	return age
}

// PruneFilter starts from {Before: before, Limit: batch size}.
func (r *Registry) PruneFilter(before time.Time) models.PruneFilter {
	r.mu.RLock()
	chain := r.pruneFilter
	filter := models.PruneFilter{Before: before, Limit: r.defaults.BatchSize}
	r.mu.RUnlock()

	for _, fn := range chain {
		filter = fn(filter)
	}
	return filter
}
