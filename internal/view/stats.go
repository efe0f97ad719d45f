package view

import (
	"context"
	"log/slog"
	"sync"
)

// StatsFetcher loads an aggregate summary.
type StatsFetcher[T any] func(ctx context.Context) (*T, error)

// Stats loads a dashboard aggregate once per mount, independent of
// list filters. Statistics are best effort: a failed fetch is logged
// and the host renders a placeholder, never an error banner.
type Stats[T any] struct {
	mu     sync.Mutex
	fetch  StatsFetcher[T]
	logger *slog.Logger
	value  *T
}

func NewStats[T any](fetch StatsFetcher[T], logger *slog.Logger) *Stats[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stats[T]{fetch: fetch, logger: logger}
}

// Load fetches the aggregate. Also used to re-fetch after a mutation.
func (s *Stats[T]) Load(ctx context.Context) {
	value, err := s.fetch(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Error("statistics fetch failed", "error", err)
		s.value = nil
		return
	}
	s.value = value
}

// Value returns the loaded aggregate; ok is false while the summary is
// unknown (not yet loaded, or the last fetch failed).
func (s *Stats[T]) Value() (*T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return nil, false
	}
	return s.value, true
}
