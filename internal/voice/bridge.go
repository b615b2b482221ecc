// Package voice bridges an external speech-recognition engine into the
// assistant's pending-input buffer.
//
// The core never talks to a concrete recognition engine. It consumes
// transcript text that arrives through the Recognizer capability interface
// (or directly over HTTP), identical in shape to typed input.
package voice

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Recognizer is the capability interface a speech engine must implement.
// The engine pushes transcripts through the result callback; the bridge
// stays agnostic to how recognition happens.
type Recognizer interface {
	// Start begins a recognition run. The callbacks fire at most once
	// per run, result before end.
	Start(ctx context.Context, onResult func(transcript string), onError func(err error), onEnd func()) error
}

// Bridge buffers one pending transcript per session until the caller
// submits it as a regular message.
type Bridge struct {
	mu      sync.Mutex
	pending map[string]string // key: session ID
}

// NewBridge creates an empty transcript buffer.
func NewBridge() *Bridge {
	return &Bridge{pending: make(map[string]string)}
}

// Push stores a transcript for a session, replacing any unconsumed one.
// A newer utterance supersedes an older unsent one.
func (b *Bridge) Push(sessionID, transcript string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[sessionID] = transcript
}

// Pop removes and returns the pending transcript for a session.
func (b *Bridge) Pop(sessionID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.pending[sessionID]
	if ok {
		delete(b.pending, sessionID)
	}
	return t, ok
}

// Peek returns the pending transcript without consuming it.
func (b *Bridge) Peek(sessionID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.pending[sessionID]
	return t, ok
}

// Listen runs one recognition pass for a session and stores the resulting
// transcript in the buffer. Recognition errors are logged and swallowed:
// a failed utterance just means nothing becomes pending.
func (b *Bridge) Listen(ctx context.Context, sessionID string, rec Recognizer) error {
	return rec.Start(ctx,
		func(transcript string) {
			b.Push(sessionID, transcript)
		},
		func(err error) {
			log.Warn().Str("session", sessionID).Err(err).Msg("voice recognition failed")
		},
		func() {
			log.Debug().Str("session", sessionID).Msg("voice recognition ended")
		},
	)
}
