// Package models defines the shared domain types for the Command Center
// executive assistant service: conversation turns, business context
// snapshots, gateway payloads, and per-cycle trace records.
package models

import (
	"time"
)

// ── Conversation ─────────────────────────────────────────────

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one message in a conversation session. Turns are immutable once
// created; IDs are unique and strictly increasing within a session.
type Turn struct {
	ID              int64     `json:"id"`
	Role            Role      `json:"role"`
	Content         string    `json:"content"`
	Timestamp       time.Time `json:"timestamp"`
	Recommendations []string  `json:"recommendations,omitempty"`

	// ErrorKind is set on assistant turns synthesized by the fallback
	// generator, so API consumers can distinguish degraded answers.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
}

// SessionInfo is the API representation of a conversation session.
type SessionInfo struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	TurnCount int       `json:"turn_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Business context ─────────────────────────────────────────

// KPI is one dashboard metric as published by the upstream data feed.
type KPI struct {
	Title      string `json:"title" yaml:"title"`
	Value      string `json:"value" yaml:"value"`
	Unit       string `json:"unit,omitempty" yaml:"unit"`
	Trend      string `json:"trend" yaml:"trend"` // "up" or "down"
	TrendValue string `json:"trendValue" yaml:"trend_value"`
	Color      string `json:"color,omitempty" yaml:"color"`
}

// Alert is one active supply chain alert.
type Alert struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Severity     string `json:"severity" yaml:"severity"` // critical, high, medium, low
	Impact       string `json:"impact" yaml:"impact"`
	Region       string `json:"region" yaml:"region"`
	TimeDetected string `json:"timeDetected" yaml:"time_detected"`
}

// BusinessProfile is the static descriptive context for the company.
type BusinessProfile struct {
	Company           string   `json:"company" yaml:"company"`
	Industry          string   `json:"industry" yaml:"industry"`
	GlobalOperations  bool     `json:"globalOperations" yaml:"global_operations"`
	KeyRegions        []string `json:"keyRegions" yaml:"key_regions"`
	CurrentChallenges []string `json:"currentChallenges" yaml:"current_challenges"`
}

// KPIStatus is a KPI enriched with the derived health status that the
// context assembler computes for the model ("concerning" when the trend is
// down, "positive" otherwise).
type KPIStatus struct {
	Metric     string `json:"metric"`
	Value      string `json:"value"`
	Unit       string `json:"unit,omitempty"`
	Trend      string `json:"trend"`
	TrendValue string `json:"trendValue"`
	Status     string `json:"status"`
}

// ContextSnapshot is a point-in-time view of business state fed into a
// prompt. It is rebuilt for every request cycle and never cached.
type ContextSnapshot struct {
	KPIs     []KPIStatus     `json:"currentKPIs"`
	Alerts   []Alert         `json:"criticalAlerts"`
	Business BusinessProfile `json:"businessContext"`
}

// TrendPoint is one labeled value/target pair in a dashboard trend chart.
type TrendPoint struct {
	Label  string  `json:"label" yaml:"label"`
	Value  float64 `json:"value" yaml:"value"`
	Target float64 `json:"target" yaml:"target"`
}

// TrendSeries groups trend points under a chart name.
type TrendSeries struct {
	Name   string       `json:"name" yaml:"name"`
	Points []TrendPoint `json:"points" yaml:"points"`
}

// QuickAction is a canned prompt offered in the assistant UI.
type QuickAction struct {
	Label  string `json:"label" yaml:"label"`
	Prompt string `json:"prompt" yaml:"prompt"`
}

// ── Gateway wire format ──────────────────────────────────────

// ChatMessage is one outbound message in a gateway request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GatewayRequest is the JSON envelope sent to the model gateway's
// OpenAI-compatible chat completions endpoint.
type GatewayRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ── Error classification ─────────────────────────────────────

// ErrorKind classifies a failed gateway call. No kind is retryable: the
// gateway is a metered resource and a failed cycle surfaces immediately
// rather than being silently retried.
type ErrorKind string

const (
	ErrKindRateLimited     ErrorKind = "rate_limited"
	ErrKindPaymentRequired ErrorKind = "payment_required"
	ErrKindTransport       ErrorKind = "transport_failure"
	ErrKindUnexpected      ErrorKind = "unexpected_gateway_error"
)

// ── Cycle traces ─────────────────────────────────────────────

// CycleStatus is the terminal state of one request cycle.
type CycleStatus string

const (
	CycleCompleted CycleStatus = "completed"
	CycleFailed    CycleStatus = "failed"
)

// CycleTrace records one assistant request cycle for observability.
// Failed cycles still produce an assistant turn (the fallback), so a
// "failed" trace only means the gateway call itself did not succeed.
type CycleTrace struct {
	ID         string      `json:"id"`
	SessionID  string      `json:"session_id"`
	Status     CycleStatus `json:"status"`
	ErrorKind  ErrorKind   `json:"error_kind,omitempty"`
	HTTPStatus int         `json:"http_status,omitempty"`
	Model      string      `json:"model"`
	DurationMs int64       `json:"duration_ms"`
	CreatedAt  time.Time   `json:"created_at"`
}
