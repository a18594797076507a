package runstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmanzanoa/lactic-acidosis-detection/internal/report"
)

// Entry is a run report together with the time it was stored.
type Entry struct {
	Report   *report.Report
	StoredAt time.Time
}

// Store is a thread-safe in-memory history of run reports, newest last.
// A background goroutine (Run) periodically evicts entries older than the
// configured retention.
type Store struct {
	mu        sync.RWMutex
	entries   []*Entry
	retention time.Duration
	now       func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given retention.
func New(retention time.Duration) *Store {
	return &Store{
		retention: retention,
		now:       time.Now,
	}
}

// Put appends a completed run report.
// Callers must not modify rep after calling Put.
func (s *Store) Put(rep *report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &Entry{
		Report:   rep,
		StoredAt: s.now(),
	})
}

// Latest returns the most recent report still within retention, and whether
// one exists.
func (s *Store) Latest() (*report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.retention)
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].StoredAt.After(cutoff) {
			return s.entries[i].Report, true
		}
	}
	return nil, false
}

// List returns all reports within retention, oldest first.
func (s *Store) List() []*report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.retention)
	out := make([]*report.Report, 0, len(s.entries))
	for _, e := range s.entries {
		if e.StoredAt.After(cutoff) {
			out = append(out, e.Report)
		}
	}
	return out
}

// Count returns the total number of entries currently held, including any
// not yet evicted.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Evict removes entries stored before now minus the retention.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.retention)
	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if e.StoredAt.After(cutoff) {
			kept = append(kept, e)
		} else {
			removed++
		}
	}
	s.entries = kept
	return removed
}

// Run starts the background eviction loop. It ticks at half the retention
// interval (minimum 1 minute) and blocks until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.retention / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("runstore: evicted expired reports", "count", n)
			}
		}
	}
}
