/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/bragi_autodj/internal/api"
	"github.com/friendsincode/bragi_autodj/internal/autodj"
	"github.com/friendsincode/bragi_autodj/internal/automation"
	"github.com/friendsincode/bragi_autodj/internal/config"
	"github.com/friendsincode/bragi_autodj/internal/db"
	"github.com/friendsincode/bragi_autodj/internal/events"
	"github.com/friendsincode/bragi_autodj/internal/selector"
	"github.com/friendsincode/bragi_autodj/internal/store"
	"github.com/friendsincode/bragi_autodj/internal/telemetry"
)

// Server bundles the HTTP API, metrics endpoint, and automation loop.
type Server struct {
	cfg    *config.Config
	logger zerolog.Logger

	db       *gorm.DB
	store    *store.Store
	bus      *events.Bus
	director *automation.Director

	router        chi.Router
	httpServer    *http.Server
	metricsServer *http.Server

	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
}

// New constructs the server and wires dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	conn, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	st := store.New(conn)
	bus := events.NewBus()

	seed := cfg.SelectorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sel := selector.NewSeeded(seed)
	eval := autodj.New(sel, logger)
	director := automation.NewDirector(st, bus, eval, cfg.TickInterval, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	api.New(st, director, logger).Routes(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", telemetry.Handler())

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		db:       conn,
		store:    st,
		bus:      bus,
		director: director,
		router:   router,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		metricsServer: &http.Server{
			Addr:    cfg.MetricsBind,
			Handler: metricsMux,
		},
	}
	return s, nil
}

// Start launches the automation loop and the metrics listener.
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.bgCancel = cancel

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		if err := s.director.Run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("automation loop exited")
		}
	}()

	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		s.logger.Info().Str("addr", s.cfg.MetricsBind).Msg("metrics server listening")
		if err := s.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("metrics server error")
		}
	}()
}

// HTTPServer returns the API listener for the caller to run.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Bus returns the event bus for external subscribers.
func (s *Server) Bus() *events.Bus {
	return s.bus
}

// Director returns the automation director.
func (s *Server) Director() *automation.Director {
	return s.director
}

// Close stops background work and releases resources.
func (s *Server) Close() error {
	if s.bgCancel != nil {
		s.bgCancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn().Err(err).Msg("metrics server shutdown failed")
	}

	s.bgWG.Wait()
	return db.Close(s.db)
}
