package inventory

import (
	"sync"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// SortSelection holds the column sort state of a dashboard session.
// Selecting the active key flips its direction; selecting another key makes
// it active in descending order.
type SortSelection struct {
	mu  sync.RWMutex
	cfg domain.SortConfig
}

// NewSortSelection starts at the default selection (score, desc).
func NewSortSelection() *SortSelection {
	return &SortSelection{cfg: domain.DefaultSortConfig()}
}

// Current returns the active selection.
func (s *SortSelection) Current() domain.SortConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Select applies a column selection and returns the new state.
func (s *SortSelection) Select(key domain.SortKey) domain.SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = Toggle(s.cfg, key)
	return s.cfg
}

// Toggle is the pure transition function behind Select.
func Toggle(current domain.SortConfig, key domain.SortKey) domain.SortConfig {
	if current.Key == key {
		return domain.SortConfig{Key: key, Direction: current.Direction.Opposite()}
	}
	return domain.SortConfig{Key: key, Direction: domain.SortDesc}
}
