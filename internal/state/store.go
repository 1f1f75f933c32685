// Package state shares the latest backend snapshot between the status
// poller, the action dispatcher and the UI.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/ragdeck/ragdeck/internal/scribe"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Running             bool
	HasStatus           bool
	Files               []scribe.FileEntry
	HasFiles            bool
	LastError           error
	ConsecutiveFailures int
	LastUpdated         time.Time
}

// IsOffline returns true when the control API has been unreachable for
// multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetStatus records the latest status poll. When err is non-nil the
// previous status is kept and the failure is counted.
func (s *Store) SetStatus(running bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Running = running
	s.snapshot.HasStatus = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetFiles replaces the file listing wholesale. The displayed corpus
// is always the last fetched snapshot, never a patched one.
func (s *Store) SetFiles(files []scribe.FileEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Files = cloneFiles(files)
	s.snapshot.HasFiles = true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Files = cloneFiles(s.snapshot.Files)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneFiles(files []scribe.FileEntry) []scribe.FileEntry {
	if len(files) == 0 {
		return nil
	}
	dup := make([]scribe.FileEntry, len(files))
	copy(dup, files)
	return dup
}
