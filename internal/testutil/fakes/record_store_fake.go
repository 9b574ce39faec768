package fakes

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dhima/synclog/internal/models"
	"github.com/dhima/synclog/pkg/clock"
)

var ErrStoreDown = errors.New("store unavailable")

// FakeRecordStore is an in-memory record store that counts calls and can fail on demand.
type FakeRecordStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	nextID  int64
	records []models.LogRecord

	CreateCalls int
	ListCalls   int
	CountCalls  int
	DeleteCalls int

	CreateErr error
	ListErr   error
	CountErr  error
	DeleteErr error

	LastCount models.RecordQuery
}

func NewFakeRecordStore(c clock.Clock) *FakeRecordStore {
	if c == nil {
		c = clock.RealClock{}
	}
	return &FakeRecordStore{clock: c}
}

// Seed inserts a record verbatim, keeping its CreatedAt when set.
func (f *FakeRecordStore) Seed(r models.LogRecord) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = f.clock.Now()
	}
	f.records = append(f.records, r)
	return r.ID
}

// Calls returns the total number of store round trips.
func (f *FakeRecordStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CreateCalls + f.ListCalls + f.CountCalls + f.DeleteCalls
}

// Records returns a copy of everything stored.
func (f *FakeRecordStore) Records() []models.LogRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LogRecord, len(f.records))
	copy(out, f.records)
	return out
}

func (f *FakeRecordStore) CreateRecord(_ context.Context, r *models.LogRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return 0, f.CreateErr
	}
	f.nextID++
	rec := *r
	rec.ID = f.nextID
	rec.CreatedAt = f.clock.Now()
	f.records = append(f.records, rec)
	return rec.ID, nil
}

func (f *FakeRecordStore) ListRecords(_ context.Context, q models.RecordQuery) ([]models.LogRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	matched := f.match(q)
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	if q.PageSize <= 0 {
		return matched, nil
	}
	start := q.Offset()
	if start >= len(matched) {
		return []models.LogRecord{}, nil
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (f *FakeRecordStore) CountRecords(_ context.Context, q models.RecordQuery) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CountCalls++
	f.LastCount = q
	if f.CountErr != nil {
		return 0, f.CountErr
	}
	return int64(len(f.match(q))), nil
}

func (f *FakeRecordStore) DeleteRecords(_ context.Context, filter models.PruneFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return 0, f.DeleteErr
	}
	kept := f.records[:0]
	var deleted int64
	for _, r := range f.records {
		eligible := r.CreatedAt.Before(filter.Before) && (filter.Category == "" || r.Category == filter.Category)
		if eligible && (filter.Limit <= 0 || deleted < int64(filter.Limit)) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func (f *FakeRecordStore) match(q models.RecordQuery) []models.LogRecord {
	out := make([]models.LogRecord, 0)
	for _, r := range f.records {
		if r.ParentID != q.ParentID {
			continue
		}
		if q.Category != "" && r.Category != q.Category {
			continue
		}
		if !metaMatches(r.Meta, q.Meta) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func metaMatches(meta map[string]string, filter models.MetaFilter) bool {
	for _, clause := range filter {
		if v, ok := meta[clause.Key]; !ok || v != clause.Value {
			return false
		}
	}
	return true
}

// Age shifts every stored record back by d. Used to make records prunable.
func (f *FakeRecordStore) Age(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		f.records[i].CreatedAt = f.records[i].CreatedAt.Add(-d)
	}
}
