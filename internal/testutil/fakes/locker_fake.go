package fakes

import (
	"context"
	"sync"
	"time"
)

// FakeLocker grants or refuses the prune lock.
type FakeLocker struct {
	mu       sync.Mutex
	Held     bool
	Err      error
	Acquired int
	Released int
}

func (l *FakeLocker) TryLock(_ context.Context, _ string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, false, l.Err
	}
	if l.Held {
		return nil, false, nil
	}
	l.Held = true
	l.Acquired++
	return func() {
		l.mu.Lock()
		l.Held = false
		l.Released++
		l.mu.Unlock()
	}, true, nil
}
