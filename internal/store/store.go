// Package store provides the in-process state for the assistant service:
// the live session registry and the per-cycle trace log. Conversation
// history is deliberately not persisted beyond a live session, so the only
// implementation is in-memory.
package store

import (
	"context"
	"time"

	"github.com/atlasgrid/command-center/internal/conversation"
	"github.com/atlasgrid/command-center/pkg/models"
)

// Store is the storage interface the handlers and the assistant service
// depend on. Keeping it an interface makes handler tests trivial to wire.
type Store interface {
	SessionStore
	TraceStore

	// Close releases all resources held by the store.
	Close() error
}

// SessionStore manages live conversation sessions. Sessions never share
// mutable state; the registry only maps IDs to independent Session objects.
type SessionStore interface {
	CreateSession(ctx context.Context, session *conversation.Session) error
	GetSession(ctx context.Context, id string) (*conversation.Session, error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context) ([]models.SessionInfo, error)

	// SweepIdleSessions removes sessions whose last activity predates the
	// cutoff and returns how many were removed.
	SweepIdleSessions(ctx context.Context, cutoff time.Time) (int, error)
}

// TraceStore records one entry per completed request cycle, including the
// machine-readable error classification for failed gateway calls.
type TraceStore interface {
	CreateTrace(ctx context.Context, trace *models.CycleTrace) error
	GetTrace(ctx context.Context, id string) (*models.CycleTrace, error)
	ListTraces(ctx context.Context, limit int) ([]models.CycleTrace, error)
}
