package fakes

import (
	"context"
	"sync"
)

// FakeOptionStore is an in-memory options table.
type FakeOptionStore struct {
	mu     sync.Mutex
	Values map[string]string
	GetErr error
	SetErr error
	Gets   int
	Writes int
}

func NewFakeOptionStore() *FakeOptionStore {
	return &FakeOptionStore{Values: make(map[string]string)}
}

func (f *FakeOptionStore) GetOption(_ context.Context, name string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Gets++
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.Values[name]
	return v, ok, nil
}

func (f *FakeOptionStore) SetOptions(_ context.Context, values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes++
	if f.SetErr != nil {
		return f.SetErr
	}
	for k, v := range values {
		f.Values[k] = v
	}
	return nil
}
