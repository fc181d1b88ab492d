package dashboard

import (
	"sync"
	"time"

	"github.com/etwin/twinboard/internal/models"
)

// Store holds the latest dashboard and the manual-override suppression window.
type Store struct {
	mu            sync.RWMutex
	current       *models.Dashboard
	suppressUntil time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Latest returns a copy of the current dashboard, or nil before the first poll.
func (s *Store) Latest() *models.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Update replaces the dashboard wholesale.
func (s *Store) Update(d *models.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = d
}

// Override installs a manual result and suppresses scheduled polls until the given time.
func (s *Store) Override(d *models.Dashboard, until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = d
	s.suppressUntil = until
}

// Suppressed reports whether scheduled polls must leave the dashboard alone at now.
func (s *Store) Suppressed(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Before(s.suppressUntil)
}

// SuppressedUntil returns the end of the current window (zero when none was set).
func (s *Store) SuppressedUntil() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppressUntil
}

// ClearOverride ends the suppression window early.
func (s *Store) ClearOverride() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressUntil = time.Time{}
}
