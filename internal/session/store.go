// Package session holds per-session conversation history in process memory,
// keyed by an opaque random identifier. History only grows: no component ever
// deletes an individual turn, though whole idle sessions are evicted.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"chat-relay/internal/model"
)

// ErrUnknownSession is the store-level sentinel for an unregistered session
// identifier. The service layer translates it into the domain-level
// ErrInvalidSession, keeping callers decoupled from the storage
// implementation.
var ErrUnknownSession = errors.New("session: unknown session")

// Store is the capability contract for session history. It is injected into
// the orchestrator so the in-memory implementation can be swapped for an
// external one without touching call sites.
type Store interface {
	// Create registers a fresh session with empty history and returns its
	// identifier. Identifiers are random UUID v4 values and never reused.
	Create() string

	// Append atomically adds the given turns to the end of the session's
	// history. The turns of one call are never interleaved with another's.
	Append(sessionID string, turns ...model.ChatTurn) error

	// History returns a copy of the session's ordered history.
	History(sessionID string) ([]model.ChatTurn, error)
}

// Options bounds the store. Zero values fall back to defaults; a TTL of zero
// still gets the default rather than disabling eviction, since unbounded
// retention is never intended.
type Options struct {
	// TTL is how long a session may sit idle before the janitor removes it.
	TTL time.Duration

	// SweepInterval is how often the janitor scans for idle sessions.
	SweepInterval time.Duration

	// MaxSessions caps the number of live sessions. When the cap is reached,
	// Create evicts the least-recently-active session.
	MaxSessions int
}

const (
	defaultTTL           = time.Hour
	defaultSweepInterval = 5 * time.Minute
	defaultMaxSessions   = 10000
)

type record struct {
	turns      []model.ChatTurn
	lastActive time.Time
}

// MemoryStore is the in-memory Store implementation. A single mutex guards
// the session map and every history; appends of a multi-turn unit are
// therefore indivisible, which is what keeps concurrent exchanges on one
// session from corrupting its history.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*record
	opts     Options

	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates the store and starts its eviction janitor.
// Call Stop on shutdown.
func NewMemoryStore(opts Options) *MemoryStore {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}

	s := &MemoryStore{
		sessions: make(map[string]*record),
		opts:     opts,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.opts.MaxSessions {
		s.evictOldestLocked()
	}

	id := uuid.NewString()
	s.sessions[id] = &record{lastActive: time.Now()}
	return id
}

func (s *MemoryStore) Append(sessionID string, turns ...model.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return ErrUnknownSession
	}
	rec.turns = append(rec.turns, turns...)
	rec.lastActive = time.Now()
	return nil
}

func (s *MemoryStore) History(sessionID string) ([]model.ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrUnknownSession
	}
	rec.lastActive = time.Now()

	history := make([]model.ChatTurn, len(rec.turns))
	copy(history, rec.turns)
	return history, nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Stop shuts down the eviction janitor. Safe to call more than once.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// evictOldestLocked removes the least-recently-active session.
// Caller must hold s.mu.
func (s *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, rec := range s.sessions {
		if oldestID == "" || rec.lastActive.Before(oldest) {
			oldestID = id
			oldest = rec.lastActive
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(s.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	cutoff := time.Now().Add(-s.opts.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.sessions {
		if rec.lastActive.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
