// Package retention sweeps idle conversation sessions.
//
// Conversation history is never persisted beyond a live session, so the
// only retention concern is memory: sessions abandoned by their caller are
// removed after an idle TTL. Sessions with a cycle in flight are never
// swept. The janitor runs as a background goroutine and respects context
// cancellation for graceful shutdown.
package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atlasgrid/command-center/internal/store"
)

// Janitor periodically removes idle sessions from the store.
type Janitor struct {
	store    store.Store
	idleTTL  time.Duration
	interval time.Duration
}

// NewJanitor creates a janitor sweeping sessions idle longer than idleTTL,
// checking every interval.
func NewJanitor(s store.Store, idleTTL, interval time.Duration) *Janitor {
	if interval < time.Second {
		interval = time.Minute
	}
	return &Janitor{
		store:    s,
		idleTTL:  idleTTL,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled, sweeping on every tick.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Info().
		Dur("idle_ttl", j.idleTTL).
		Dur("interval", j.interval).
		Msg("session janitor started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session janitor stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-j.idleTTL)
	removed, err := j.store.SweepIdleSessions(ctx, cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("session sweep failed")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("swept idle sessions")
	}
}
