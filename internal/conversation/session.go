// Package conversation implements the append-only conversation log for one
// assistant session: turn creation, history windowing, reset, and the
// single-cycle-in-flight guard.
package conversation

import (
	"errors"
	"sync"
	"time"

	"github.com/atlasgrid/command-center/pkg/models"
)

// WelcomeMessage seeds every new (or reset) session as a system turn. It is
// shown locally and never sent to the gateway.
const WelcomeMessage = "Welcome to the Castrol Supply Chain Command Center AI Assistant. " +
	"I can provide executive briefings, analyze KPIs, explain alerts, and suggest " +
	"strategic actions based on real-time supply chain data."

// CycleState tracks where a session is in its request cycle. Only one cycle
// may be in flight per session; submissions during a cycle are rejected,
// never queued.
type CycleState string

const (
	StateIdle             CycleState = "idle"
	StateComposing        CycleState = "composing"
	StateAwaitingResponse CycleState = "awaiting_response"
)

// ErrCycleInFlight is returned when a submission arrives while the session
// is already processing a message.
var ErrCycleInFlight = errors.New("a request cycle is already in flight for this session")

// Session is the ordered, append-only set of turns for one live assistant
// interaction. Past turns are never mutated; the only destructive operation
// is a full Reset.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	turns     []models.Turn
	nextID    int64
	state     CycleState
	updatedAt time.Time
}

// NewSession creates a session seeded with the welcome system turn.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		state:     StateIdle,
		updatedAt: now,
	}
	s.seedWelcome()
	return s
}

func (s *Session) seedWelcome() {
	s.nextID = 1
	s.turns = []models.Turn{{
		ID:        s.nextID,
		Role:      models.RoleSystem,
		Content:   WelcomeMessage,
		Timestamp: time.Now().UTC(),
	}}
}

// Append creates a new immutable turn at the end of the log and returns it.
// Turn IDs are assigned from a per-session counter and strictly increase.
func (s *Session) Append(role models.Role, content string, recommendations []string, errKind models.ErrorKind) models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	turn := models.Turn{
		ID:              s.nextID,
		Role:            role,
		Content:         content,
		Timestamp:       time.Now().UTC(),
		Recommendations: append([]string(nil), recommendations...),
		ErrorKind:       errKind,
	}
	s.turns = append(s.turns, turn)
	s.updatedAt = turn.Timestamp
	return turn
}

// Window returns the last n non-system turns in original order. It never
// mutates the log; system turns exist for local display only and are
// excluded from outbound prompts.
func (s *Session) Window(n int) []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return nil
	}

	var recent []models.Turn
	for i := len(s.turns) - 1; i >= 0 && len(recent) < n; i-- {
		if s.turns[i].Role == models.RoleSystem {
			continue
		}
		recent = append(recent, s.turns[i])
	}

	// Collected newest-first; restore original order.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent
}

// Turns returns a copy of the full log, welcome turn included.
func (s *Session) Turns() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns in the log.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Reset clears all turns and reseeds the welcome system turn. The turn ID
// counter restarts; a reset session is indistinguishable from a fresh one.
// A session with a cycle in flight refuses the reset with ErrCycleInFlight:
// reseeding mid-cycle would reopen the gate and let the resolving cycle
// append onto the fresh log.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrCycleInFlight
	}
	s.seedWelcome()
	s.updatedAt = time.Now().UTC()
	return nil
}

// BeginCycle transitions Idle → Composing. It fails with ErrCycleInFlight
// if another cycle holds the session.
func (s *Session) BeginCycle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrCycleInFlight
	}
	s.state = StateComposing
	return nil
}

// MarkAwaiting transitions Composing → AwaitingResponse once the outbound
// request has been composed and is about to be sent.
func (s *Session) MarkAwaiting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateComposing {
		s.state = StateAwaitingResponse
	}
}

// EndCycle returns the session to Idle regardless of outcome.
func (s *Session) EndCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.updatedAt = time.Now().UTC()
}

// State reports the current cycle state.
func (s *Session) State() CycleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UpdatedAt reports the last time the session changed, used by the
// idle-session janitor.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Info returns the API representation of the session.
func (s *Session) Info() models.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionInfo{
		ID:        s.ID,
		State:     string(s.state),
		TurnCount: len(s.turns),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
}
