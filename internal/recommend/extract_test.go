package recommend_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/atlasgrid/command-center/internal/recommend"
)

func TestExtract_TriggerSentences(t *testing.T) {
	got := recommend.Extract("We recommend you expedite shipment. You should also notify the customer.")
	want := []string{
		"We recommend you expedite shipment.",
		"You should also notify the customer.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_IgnoresNonTriggerSentences(t *testing.T) {
	got := recommend.Extract("Revenue is up 12.5%. We recommend increasing safety stock in EMEA.")
	want := []string{"We recommend increasing safety stock in EMEA."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_DecimalPeriodIsNotABoundary(t *testing.T) {
	got := recommend.Extract("OTIF sits at 87.2% so you should escalate now.")
	want := []string{"OTIF sits at 87.2% so you should escalate now."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_CaseInsensitiveTriggers(t *testing.T) {
	got := recommend.Extract("We SUGGEST a supplier audit! Immediate ACTION is required.")
	if len(got) != 2 {
		t.Fatalf("Extract() found %d matches, want 2: %q", len(got), got)
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	text := "You should act now. Something else entirely. You should act now."
	got := recommend.Extract(text)
	if len(got) != 1 {
		t.Errorf("Extract() = %q, want single deduplicated entry", got)
	}
}

func TestExtract_CapsAtFive(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "We recommend step %d. ", i)
	}
	got := recommend.Extract(b.String())
	if len(got) != recommend.MaxRecommendations {
		t.Errorf("Extract() returned %d entries, want %d", len(got), recommend.MaxRecommendations)
	}
	// First-seen order preserved.
	if got[0] != "We recommend step 0." || got[4] != "We recommend step 4." {
		t.Errorf("Extract() order wrong: %q", got)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	if got := recommend.Extract("Revenue is flat. Volume is stable."); len(got) != 0 {
		t.Errorf("Extract() = %q, want none", got)
	}
}

func TestExtract_TrailingSentenceWithoutTerminator(t *testing.T) {
	got := recommend.Extract("We recommend a full review")
	want := []string{"We recommend a full review"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}
