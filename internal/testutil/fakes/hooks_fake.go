package fakes

import "github.com/dhima/synclog/internal/models"

// FakeHooks records which retention overrides were registered.
type FakeHooks struct {
	LogTypes     []func([]string) []string
	PruneEnabled []func(bool) bool
	PruneAge     []func(string) string
	PruneFilter  []func(models.PruneFilter) models.PruneFilter
}

func (h *FakeHooks) RegisterLogTypes(fn func([]string) []string) {
	h.LogTypes = append(h.LogTypes, fn)
}

func (h *FakeHooks) RegisterPruneEnabled(fn func(bool) bool) {
	h.PruneEnabled = append(h.PruneEnabled, fn)
}

func (h *FakeHooks) RegisterPruneAge(fn func(string) string) {
	h.PruneAge = append(h.PruneAge, fn)
}

func (h *FakeHooks) RegisterPruneFilter(fn func(models.PruneFilter) models.PruneFilter) {
	h.PruneFilter = append(h.PruneFilter, fn)
}

// Total returns the number of registrations across all hook kinds.
func (h *FakeHooks) Total() int {
	return len(h.LogTypes) + len(h.PruneEnabled) + len(h.PruneAge) + len(h.PruneFilter)
}
