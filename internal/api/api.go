// Package api provides HTTP handlers and the main server logic for Sampark.
//
// It exposes the Twilio inbound webhook plus JSON endpoints for the
// operator dashboard. The API integrates with the flow engine, the profile
// store, and the messaging service.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sampark-health/sampark/internal/flow"
	"github.com/sampark-health/sampark/internal/messaging"
	"github.com/sampark-health/sampark/internal/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the server listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server hosts the webhook and dashboard endpoints.
type Server struct {
	addr       string
	engine     *flow.Engine
	store      store.Store
	msgService messaging.Service
	httpServer *http.Server
}

// NewServer creates an API server over the given collaborators.
func NewServer(engine *flow.Engine, st store.Store, msgService messaging.Service, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	slog.Debug("api.NewServer: server created", "addr", cfg.Addr)
	return &Server{
		addr:       cfg.Addr,
		engine:     engine,
		store:      st,
		msgService: msgService,
	}
}

// Handler builds the route table. JSON endpoints share the panic-recovery
// middleware; the webhook carries its own boundary because its failure mode
// is a conversational TwiML apology, not a JSON error.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/twilio", s.incomingHandler)
	mux.HandleFunc("/api/dashboard", s.recoverJSON(s.dashboardHandler))
	mux.HandleFunc("/api/profiles", s.recoverJSON(s.profilesHandler))
	mux.HandleFunc("/api/events", s.recoverJSON(s.eventsHandler))
	mux.HandleFunc("/api/send", s.recoverJSON(s.sendHandler))
	mux.HandleFunc("/healthz", s.healthHandler)
	return mux
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Sampark API listening", "addr", s.addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
