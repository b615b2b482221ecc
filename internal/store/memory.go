package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/atlasgrid/command-center/internal/conversation"
	"github.com/atlasgrid/command-center/pkg/models"
)

// maxTraces bounds the trace log; the oldest entries are dropped first.
const maxTraces = 1000

// MemoryStore implements Store with mutex-guarded in-memory maps.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*conversation.Session // key: session ID
	traces   []*models.CycleTrace             // append order = creation order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*conversation.Session),
	}
}

// Close releases store resources. Nothing to flush for the memory store.
func (s *MemoryStore) Close() error { return nil }

// ── Sessions ────────────────────────────────────────────────

func (s *MemoryStore) CreateSession(_ context.Context, session *conversation.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (*conversation.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return session, nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return fmt.Errorf("session %s not found", id)
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) ListSessions(_ context.Context) ([]models.SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]models.SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		infos = append(infos, sess.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos, nil
}

func (s *MemoryStore) SweepIdleSessions(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		// Never sweep a session with a cycle in flight.
		if sess.State() != conversation.StateIdle {
			continue
		}
		if sess.UpdatedAt().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// ── Traces ──────────────────────────────────────────────────

func (s *MemoryStore) CreateTrace(_ context.Context, trace *models.CycleTrace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.traces = append(s.traces, trace)
	if len(s.traces) > maxTraces {
		s.traces = s.traces[len(s.traces)-maxTraces:]
	}
	return nil
}

func (s *MemoryStore) GetTrace(_ context.Context, id string) (*models.CycleTrace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.traces {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("trace %s not found", id)
}

func (s *MemoryStore) ListTraces(_ context.Context, limit int) ([]models.CycleTrace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.traces) {
		limit = len(s.traces)
	}

	// Newest first.
	out := make([]models.CycleTrace, 0, limit)
	for i := len(s.traces) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *s.traces[i])
	}
	return out, nil
}
