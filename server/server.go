// Package server exposes a running simulation over HTTP
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/metrics"
	"github.com/lixenwraith/vi-gravity/parameter"
)

// Server serves snapshots and accepts edits for one Loop
// Reads use the published snapshot; writes go through Loop.RunSafe
type Server struct {
	loop      *engine.Loop
	collector *metrics.Collector
	logger    *zap.Logger
	validate  *validator.Validate
}

// New creates a server; collector may be nil to disable /metrics
func New(loop *engine.Loop, collector *metrics.Collector, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		loop:      loop,
		collector: collector,
		logger:    logger,
		validate:  validator.New(),
	}
}

// Routes configures all routes and middleware
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.requestLogger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthCheck)
	if s.collector != nil {
		router.Handle("/metrics", s.collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", s.getState)

		r.Route("/bodies", func(r chi.Router) {
			r.Get("/", s.listBodies)
			r.Post("/", s.createBody)
			r.Get("/{bodyID}", s.getBody)
			r.Delete("/{bodyID}", s.deleteBody)
			r.Put("/{bodyID}/focus", s.focusBody)
		})

		r.Route("/photons", func(r chi.Router) {
			r.Post("/", s.emitPhotons)
			r.Delete("/", s.clearPhotons)
		})

		r.Post("/blackholes", s.dropBlackHole)
		r.Post("/launch", s.launch)
		r.Put("/timescale", s.setTimeScale)
		r.Put("/tracks", s.setTrackLengths)
		r.Delete("/tracks", s.clearTracks)
		r.Post("/pause", s.pause)
		r.Post("/resume", s.resume)
		r.Post("/scenario", s.loadScenario)
	})

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  parameter.ServerReadTimeout,
		WriteTimeout: parameter.ServerWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.ServerShutdownGrace)
	defer cancel()
	s.logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
