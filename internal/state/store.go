package state

import (
	"fmt"
	"sync"
	"time"
)

// Connection is the caller-facing result of a discovery attempt. It never
// carries the credential.
type Connection struct {
	OK    bool   `json:"ok"`
	Port  uint16 `json:"port,omitempty"`
	Error string `json:"error,omitempty"`
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Connection          Connection
	HasConnection       bool // at least one discovery has completed
	LastConnected       time.Time
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when discovery has failed for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a discovery result. A non-nil err, or a connection that is
// not OK, counts as a failure; LastConnected still reports when the client
// was last seen.
func (s *Store) Update(conn *Connection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.LastUpdated = now
	s.snapshot.HasConnection = true

	if err == nil && (conn == nil || !conn.OK) {
		msg := "league client not found"
		if conn != nil && conn.Error != "" {
			msg = conn.Error
		}
		err = fmt.Errorf("%s", msg)
	}
	if err != nil {
		s.snapshot.Connection = Connection{Error: err.Error()}
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Connection = *conn
	s.snapshot.LastConnected = now
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
