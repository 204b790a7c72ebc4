package store

import (
	"context"
	"sort"
	"sync"
	"time"

	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
)

// MemoryHistoryStore is an in-memory implementation for tests and for
// running with history persistence disabled
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryHistoryStore creates a new in-memory history store
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

// Record stores a copy of entry
func (s *MemoryHistoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)
	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

// Query returns matching entries newest first
func (s *MemoryHistoryStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Source != "" && e.Source != filter.Source {
			continue
		}
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if filter.Limit > 0 {
		if filter.Offset >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
		if len(result) > filter.Limit {
			result = result[:filter.Limit]
		}
	}
	return result, nil
}

// Get returns a single entry
func (s *MemoryHistoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, mdwerror.New("history entry not found").
		WithCode(mdwerror.CodeNotFound).
		WithOperation("store.Get").
		WithDetail("id", id)
}

// Stats returns aggregate counts
func (s *MemoryHistoryStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByErrorCode: make(map[string]int64)}
	var totalDuration float64
	for _, e := range s.entries {
		stats.Total++
		totalDuration += e.DurationMs
		if e.Status == StatusSolved {
			stats.Solved++
		} else {
			stats.Failed++
			if e.ErrorCode != "" {
				stats.ByErrorCode[e.ErrorCode]++
			}
		}
	}
	if stats.Total > 0 {
		stats.AvgDurationMs = totalDuration / float64(stats.Total)
	}
	return stats, nil
}

// Prune removes entries older than the specified duration
func (s *MemoryHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := s.entries[:0]
	var removed int64
	for _, e := range s.entries {
		if e.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed, nil
}

// Ping always succeeds
func (s *MemoryHistoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (s *MemoryHistoryStore) Close() error {
	return nil
}
