package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the Command Center assistant service.
type Config struct {
	Port      int
	Version   string
	Gateway   GatewayConfig
	Assistant AssistantConfig
	Sessions  SessionConfig
	Telemetry TelemetryConfig
	Auth      AuthConfig
}

// GatewayConfig configures the outbound model gateway call.
type GatewayConfig struct {
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// AssistantConfig bounds the conversation pipeline.
type AssistantConfig struct {
	// HistoryWindow is the number of recent non-system turns included in
	// each gateway request, regardless of total session length.
	HistoryWindow int
	// MaxMessageLen rejects pathological inputs before they reach the
	// metered gateway.
	MaxMessageLen int
}

// SessionConfig controls the idle-session janitor.
type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

type AuthConfig struct {
	// APIKeysEnv names the env var holding the comma-separated API keys.
	// Auth is disabled when the variable is unset.
	APIKeysEnv string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envInt("COMMAND_CENTER_PORT", 8080),
		Version: envStr("COMMAND_CENTER_VERSION", "0.2.0"),
		Gateway: GatewayConfig{
			Endpoint:    envStr("AI_GATEWAY_ENDPOINT", "https://ai.gateway.lovable.dev/v1"),
			APIKey:      envStr("AI_GATEWAY_API_KEY", ""),
			Model:       envStr("AI_GATEWAY_MODEL", "google/gemini-2.5-flash"),
			Temperature: envFloat("AI_GATEWAY_TEMPERATURE", 0.7),
			MaxTokens:   envInt("AI_GATEWAY_MAX_TOKENS", 2000),
			Timeout:     envDuration("AI_GATEWAY_TIMEOUT", 60*time.Second),
		},
		Assistant: AssistantConfig{
			HistoryWindow: envInt("ASSISTANT_HISTORY_WINDOW", 5),
			MaxMessageLen: envInt("ASSISTANT_MAX_MESSAGE_LEN", 4000),
		},
		Sessions: SessionConfig{
			IdleTTL:       envDuration("SESSION_IDLE_TTL", 2*time.Hour),
			SweepInterval: envDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		},
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "command-center-assistant"),
		},
		Auth: AuthConfig{
			APIKeysEnv: "COMMAND_CENTER_API_KEYS",
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
