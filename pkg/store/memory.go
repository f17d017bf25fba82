package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore implements Store in memory. It is used by tests and when the
// history database is disabled.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*Run)}
}

func (s *MemoryStore) Save(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = cloneRun(run, true)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRun(run, true), nil
}

func (s *MemoryStore) List(_ context.Context, query Query) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []*Run
	for _, run := range s.runs {
		if query.Path != "" && run.Path != query.Path {
			continue
		}
		if query.Since != nil && run.StartedAt.Before(*query.Since) {
			continue
		}
		runs = append(runs, cloneRun(run, false))
	}
	slices.SortFunc(runs, func(a, b *Run) int { return -compareAge(a, b) })
	if query.Limit > 0 && len(runs) > query.Limit {
		runs = runs[:query.Limit]
	}
	return runs, nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.runs)), nil
}

func (s *MemoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, run := range s.runs {
		if run.StartedAt.Before(cutoff) {
			delete(s.runs, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) DeleteOldest(_ context.Context, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	slices.SortFunc(runs, compareAge)

	var deleted int64
	for _, run := range runs {
		if deleted >= n {
			break
		}
		delete(s.runs, run.ID)
		deleted++
	}
	return deleted, nil
}

func (s *MemoryStore) Close() error { return nil }

// compareAge orders runs oldest first, breaking ties by ID.
func compareAge(a, b *Run) int {
	if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

func cloneRun(run *Run, withFindings bool) *Run {
	c := *run
	c.FailedRules = slices.Clone(run.FailedRules)
	c.Findings = nil
	if withFindings {
		c.Findings = slices.Clone(run.Findings)
	}
	return &c
}
