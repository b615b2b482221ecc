// Package assistant orchestrates one request cycle of the executive
// assistant pipeline:
//
//	user input → fresh context snapshot → prompt composition (bounded
//	history window) → gateway call → on success: recommendation extraction;
//	on failure: fallback generation → append assistant turn.
//
// Every cycle updates the conversation store exactly once with exactly one
// new assistant turn, whether or not the gateway call succeeds. Cycles are
// never retried and never queued: a session accepts one submission at a
// time and rejects the rest until the current cycle resolves.
package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/atlasgrid/command-center/internal/briefing"
	"github.com/atlasgrid/command-center/internal/catalog"
	"github.com/atlasgrid/command-center/internal/fallback"
	"github.com/atlasgrid/command-center/internal/gateway"
	"github.com/atlasgrid/command-center/internal/prompt"
	"github.com/atlasgrid/command-center/internal/recommend"
	"github.com/atlasgrid/command-center/internal/store"
	"github.com/atlasgrid/command-center/pkg/models"
)

// Gateway is the outbound model call the service depends on. The concrete
// client lives in internal/gateway; tests substitute their own.
type Gateway interface {
	Invoke(ctx context.Context, req *models.GatewayRequest) (string, error)
}

// Service runs assistant request cycles against live sessions.
type Service struct {
	store   store.Store
	catalog *catalog.Catalog
	gateway Gateway
	builder *prompt.Builder
	window  int
}

// NewService wires the assistant pipeline.
func NewService(s store.Store, cat *catalog.Catalog, gw Gateway, builder *prompt.Builder, historyWindow int) *Service {
	return &Service{
		store:   s,
		catalog: cat,
		gateway: gw,
		builder: builder,
		window:  historyWindow,
	}
}

// Submit runs one request cycle for the session and returns the appended
// assistant turn.
//
// State machine: Idle → Composing → AwaitingResponse → {Completed | Failed}
// → Idle. A submission while a cycle is in flight fails with
// conversation.ErrCycleInFlight; invalid input fails with
// prompt.ErrEmptyMessage before any turn is appended.
func (s *Service) Submit(ctx context.Context, sessionID, content string) (models.Turn, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return models.Turn{}, err
	}

	if err := sess.BeginCycle(); err != nil {
		return models.Turn{}, err
	}
	defer sess.EndCycle()

	// The snapshot is rebuilt every cycle so it reflects the latest
	// upstream KPI/alert state.
	snap := briefing.Assemble(s.catalog.KPIs(), s.catalog.Alerts(), s.catalog.Profile())

	// Compose before appending: an invalid message must leave the log
	// untouched. The window also must not include the message being sent.
	req, err := s.builder.Compose(snap, sess.Window(s.window), content)
	if err != nil {
		return models.Turn{}, err
	}

	sess.Append(models.RoleUser, content, nil, "")
	sess.MarkAwaiting()

	start := time.Now()
	text, invokeErr := s.gateway.Invoke(ctx, req)

	var turn models.Turn
	if invokeErr != nil {
		kind := gateway.KindOf(invokeErr)
		log.Warn().
			Str("session", sessionID).
			Str("kind", string(kind)).
			Err(invokeErr).
			Msg("gateway call failed, generating fallback turn")

		turn = sess.Append(models.RoleAssistant, fallback.Generate(kind, snap), nil, kind)
		s.recordTrace(ctx, sessionID, req.Model, models.CycleFailed, kind, gateway.StatusOf(invokeErr), start)
		return turn, nil
	}

	turn = sess.Append(models.RoleAssistant, text, recommend.Extract(text), "")
	s.recordTrace(ctx, sessionID, req.Model, models.CycleCompleted, "", 0, start)
	return turn, nil
}

func (s *Service) recordTrace(ctx context.Context, sessionID, model string, status models.CycleStatus, kind models.ErrorKind, httpStatus int, start time.Time) {
	trace := &models.CycleTrace{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Status:     status,
		ErrorKind:  kind,
		HTTPStatus: httpStatus,
		Model:      model,
		DurationMs: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreateTrace(ctx, trace); err != nil {
		log.Warn().Err(err).Msg("failed to record cycle trace")
	}
}
