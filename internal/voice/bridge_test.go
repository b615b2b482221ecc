package voice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/atlasgrid/command-center/internal/voice"
)

// fakeRecognizer drives the callbacks with a canned result.
type fakeRecognizer struct {
	transcript string
	err        error
}

func (f *fakeRecognizer) Start(_ context.Context, onResult func(string), onError func(error), onEnd func()) error {
	if f.err != nil {
		onError(f.err)
	} else {
		onResult(f.transcript)
	}
	onEnd()
	return nil
}

func TestPushAndPop(t *testing.T) {
	b := voice.NewBridge()

	b.Push("sess-1", "show me inventory health")

	got, ok := b.Pop("sess-1")
	if !ok {
		t.Fatal("Pop() found nothing, want pending transcript")
	}
	if got != "show me inventory health" {
		t.Errorf("Pop() = %q, want pushed transcript", got)
	}

	if _, ok := b.Pop("sess-1"); ok {
		t.Error("Pop() twice succeeded, want transcript consumed")
	}
}

func TestPushReplacesPending(t *testing.T) {
	b := voice.NewBridge()

	b.Push("sess-1", "first utterance")
	b.Push("sess-1", "second utterance")

	got, _ := b.Pop("sess-1")
	if got != "second utterance" {
		t.Errorf("Pop() = %q, want newest transcript", got)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	b := voice.NewBridge()

	b.Push("sess-1", "hello")

	if got, ok := b.Peek("sess-1"); !ok || got != "hello" {
		t.Errorf("Peek() = %q, %v, want %q, true", got, ok, "hello")
	}
	if _, ok := b.Pop("sess-1"); !ok {
		t.Error("Pop() after Peek() found nothing, want transcript still pending")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	b := voice.NewBridge()

	b.Push("sess-1", "for one")
	if _, ok := b.Pop("sess-2"); ok {
		t.Error("Pop() on another session returned a transcript")
	}
}

func TestListenBuffersRecognizedSpeech(t *testing.T) {
	b := voice.NewBridge()

	rec := &fakeRecognizer{transcript: "what is the demand forecast"}
	if err := b.Listen(context.Background(), "sess-1", rec); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	got, ok := b.Pop("sess-1")
	if !ok || got != "what is the demand forecast" {
		t.Errorf("Pop() after Listen() = %q, %v, want recognized transcript", got, ok)
	}
}

func TestListenSwallowsRecognitionErrors(t *testing.T) {
	b := voice.NewBridge()

	rec := &fakeRecognizer{err: errors.New("no-speech")}
	if err := b.Listen(context.Background(), "sess-1", rec); err != nil {
		t.Fatalf("Listen() error = %v, want recognition errors swallowed", err)
	}

	if _, ok := b.Peek("sess-1"); ok {
		t.Error("Peek() found a transcript after a failed recognition run")
	}
}
