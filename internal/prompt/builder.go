// Package prompt composes gateway requests from a context snapshot, a
// bounded history window, and the new user message.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atlasgrid/command-center/pkg/models"
)

// ErrEmptyMessage rejects empty or whitespace-only user messages before a
// gateway request is composed.
var ErrEmptyMessage = errors.New("user message is empty")

// systemInstruction is the template for the system message. The serialized
// snapshot blocks are injected so the model can ground its answer in the
// actual KPI and alert data.
const systemInstruction = `You are the AI Executive Assistant for Castrol's Global Supply Chain Command Center. You provide strategic insights, executive briefings, and actionable recommendations based on real-time supply chain data.

COMPANY CONTEXT:
- Castrol is a leading global lubricants company
- Operations span across EMEA, Americas, APAC, and India
- Product portfolio: Automotive oils, Industrial fluids, Marine lubricants
- Key focus areas: OTIF performance, inventory optimization, demand forecasting, supplier management

CURRENT BUSINESS SITUATION:
%s

REAL-TIME KPI DATA:
%s

CRITICAL ALERTS:
%s

RESPONSE GUIDELINES:
1. Always provide executive-level insights with business impact
2. Use specific data points from the provided context
3. Prioritize actions by business impact and urgency
4. Reference actual KPI values and alert details
5. Provide strategic recommendations with implementation timeframes
6. Use professional, confident tone suitable for C-suite executives
7. Always include financial implications when relevant
8. Structure responses clearly with key points and recommendations

When analyzing alerts or KPIs:
- Explain root causes and interdependencies
- Quantify business impact (revenue, cost, service level)
- Suggest specific mitigation actions with ownership
- Identify systemic improvements for prevention
- Consider regional and product-specific implications`

// Builder composes gateway requests with fixed model parameters.
type Builder struct {
	model       string
	temperature float64
	maxTokens   int
}

// NewBuilder creates a prompt builder for the configured model.
func NewBuilder(model string, temperature float64, maxTokens int) *Builder {
	return &Builder{
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Compose builds the outbound gateway request.
//
// The snapshot is serialized into the system instruction; window turns map
// user→"user" and assistant→"assistant" (system turns are skipped — they
// exist for local display only); the new user message goes last. An empty
// or whitespace-only message fails with ErrEmptyMessage.
func (b *Builder) Compose(snap models.ContextSnapshot, window []models.Turn, userMessage string) (*models.GatewayRequest, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, ErrEmptyMessage
	}

	system, err := b.renderSystemInstruction(snap)
	if err != nil {
		return nil, err
	}

	messages := make([]models.ChatMessage, 0, len(window)+2)
	messages = append(messages, models.ChatMessage{Role: "system", Content: system})

	for _, turn := range window {
		switch turn.Role {
		case models.RoleUser:
			messages = append(messages, models.ChatMessage{Role: "user", Content: turn.Content})
		case models.RoleAssistant:
			messages = append(messages, models.ChatMessage{Role: "assistant", Content: turn.Content})
		}
	}

	messages = append(messages, models.ChatMessage{Role: "user", Content: userMessage})

	return &models.GatewayRequest{
		Model:       b.model,
		Messages:    messages,
		Temperature: b.temperature,
		MaxTokens:   b.maxTokens,
	}, nil
}

func (b *Builder) renderSystemInstruction(snap models.ContextSnapshot) (string, error) {
	business, err := json.MarshalIndent(snap.Business, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize business context: %w", err)
	}
	kpis, err := json.MarshalIndent(snap.KPIs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize kpi data: %w", err)
	}
	alerts, err := json.MarshalIndent(snap.Alerts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize alert data: %w", err)
	}
	return fmt.Sprintf(systemInstruction, business, kpis, alerts), nil
}
