// Package server provides the public entry point for initializing the
// Command Center assistant service.
//
// Usage:
//
//	srv, err := server.New(ctx)
//	http.ListenAndServe(":8080", srv.Handler)
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/atlasgrid/command-center/internal/api"
	"github.com/atlasgrid/command-center/internal/api/handlers"
	"github.com/atlasgrid/command-center/internal/assistant"
	"github.com/atlasgrid/command-center/internal/catalog"
	"github.com/atlasgrid/command-center/internal/config"
	"github.com/atlasgrid/command-center/internal/gateway"
	"github.com/atlasgrid/command-center/internal/prompt"
	"github.com/atlasgrid/command-center/internal/retention"
	"github.com/atlasgrid/command-center/internal/store"
	"github.com/atlasgrid/command-center/internal/telemetry"
	"github.com/atlasgrid/command-center/internal/voice"
)

// Server holds the initialized assistant service.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Store is the in-memory session/trace store.
	Store store.Store

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry
	// and stop the session janitor.
	ShutdownFunc func(context.Context) error
}

// New initializes all components and returns a ready Server. The session
// janitor runs until ctx is cancelled.
func New(ctx context.Context) (*Server, error) {
	return NewWithConfig(ctx, config.Load())
}

// NewWithConfig initializes the service with an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	shutdownTelemetry, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Info().
		Int("kpis", len(cat.KPIs())).
		Int("alerts", len(cat.Alerts())).
		Msg("reference catalog loaded")

	dataStore := store.NewMemoryStore()

	builder := prompt.NewBuilder(cfg.Gateway.Model, cfg.Gateway.Temperature, cfg.Gateway.MaxTokens)
	gw := gateway.NewClient(cfg.Gateway)
	svc := assistant.NewService(dataStore, cat, gw, builder, cfg.Assistant.HistoryWindow)
	bridge := voice.NewBridge()

	log.Info().
		Str("model", cfg.Gateway.Model).
		Int("history_window", cfg.Assistant.HistoryWindow).
		Msg("assistant pipeline initialized")

	// Sweep abandoned sessions in the background.
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	janitor := retention.NewJanitor(dataStore, cfg.Sessions.IdleTTL, cfg.Sessions.SweepInterval)
	go janitor.Run(janitorCtx)

	h := handlers.New(dataStore, svc, cat, bridge, cfg.Assistant.MaxMessageLen)
	router := api.NewRouter(cfg, h)

	return &Server{
		Handler: router,
		Store:   dataStore,
		Port:    cfg.Port,
		ShutdownFunc: func(shutdownCtx context.Context) error {
			stopJanitor()
			return shutdownTelemetry(shutdownCtx)
		},
	}, nil
}
