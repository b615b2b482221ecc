package prompt_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/atlasgrid/command-center/internal/prompt"
	"github.com/atlasgrid/command-center/pkg/models"
)

func testSnapshot() models.ContextSnapshot {
	return models.ContextSnapshot{
		KPIs: []models.KPIStatus{
			{Metric: "OTIF %", Value: "87.2", Unit: "%", Trend: "down", TrendValue: "-4.8%", Status: "concerning"},
		},
		Alerts: []models.Alert{
			{ID: "1", Title: "Base Oil Shortage", Severity: "critical", Region: "EMEA North"},
		},
		Business: models.BusinessProfile{Company: "Castrol"},
	}
}

func newTestBuilder() *prompt.Builder {
	return prompt.NewBuilder("google/gemini-2.5-flash", 0.7, 2000)
}

func TestCompose_EmptyMessage(t *testing.T) {
	b := newTestBuilder()

	for _, msg := range []string{"", "   ", "\n\t "} {
		_, err := b.Compose(testSnapshot(), nil, msg)
		if !errors.Is(err, prompt.ErrEmptyMessage) {
			t.Errorf("Compose(%q) error = %v, want ErrEmptyMessage", msg, err)
		}
	}
}

func TestCompose_SystemInstructionEmbedsSnapshot(t *testing.T) {
	b := newTestBuilder()

	req, err := b.Compose(testSnapshot(), nil, "summarize performance")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	system := req.Messages[0]
	if system.Role != "system" {
		t.Fatalf("first message role = %q, want system", system.Role)
	}
	for _, needle := range []string{"OTIF %", "87.2", "Base Oil Shortage", "Castrol", "REAL-TIME KPI DATA", "CRITICAL ALERTS"} {
		if !strings.Contains(system.Content, needle) {
			t.Errorf("system instruction missing %q", needle)
		}
	}
}

func TestCompose_MapsWindowRolesAndSkipsSystem(t *testing.T) {
	b := newTestBuilder()

	window := []models.Turn{
		{ID: 1, Role: models.RoleSystem, Content: "welcome"},
		{ID: 2, Role: models.RoleUser, Content: "first question"},
		{ID: 3, Role: models.RoleAssistant, Content: "first answer"},
	}

	req, err := b.Compose(testSnapshot(), window, "second question")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	// system instruction + 2 window turns + new message
	if len(req.Messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(req.Messages))
	}
	if req.Messages[1].Role != "user" || req.Messages[1].Content != "first question" {
		t.Errorf("messages[1] = %+v", req.Messages[1])
	}
	if req.Messages[2].Role != "assistant" || req.Messages[2].Content != "first answer" {
		t.Errorf("messages[2] = %+v", req.Messages[2])
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Role != "user" || last.Content != "second question" {
		t.Errorf("last message = %+v, want the new user message", last)
	}

	for _, m := range req.Messages[1:] {
		if m.Content == "welcome" {
			t.Error("system turn from the window leaked into outbound messages")
		}
	}
}

func TestCompose_ModelParameters(t *testing.T) {
	b := newTestBuilder()

	req, err := b.Compose(testSnapshot(), nil, "hello")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if req.Model != "google/gemini-2.5-flash" {
		t.Errorf("Model = %q", req.Model)
	}
	if req.Temperature != 0.7 {
		t.Errorf("Temperature = %v", req.Temperature)
	}
	if req.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d", req.MaxTokens)
	}
}
