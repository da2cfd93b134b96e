// Package api serves the journal valuation and reports as JSON over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/activity"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds server configuration
type Config struct {
	Addr           string // listen address, like ":8080"
	Log            zerolog.Logger
	Engine         *tradejournal.Engine
	Rules          tradejournal.RulesStore // nil disables /api/rules.
	Activity       activity.Logger         // records rules changes, can be nil.
	AllowedOrigins []string                // defaults to any origin.
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	engine   *tradejournal.Engine
	rules    tradejournal.RulesStore
	activity activity.Logger
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "api").Logger(),
		engine:   cfg.Engine,
		rules:    cfg.Rules,
		activity: cfg.Activity,
	}
	if s.activity == nil {
		s.activity = activity.Nop{}
	}

	s.setupMiddleware(cfg.AllowedOrigins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
	// price lookups are the slowest part of a request.
	s.router.Use(middleware.Timeout(45 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/portfolio/value", s.handlePortfolioValue)
		r.Get("/trades/open", s.handleOpenTrades)
		r.Get("/trades/closed", s.handleClosedTrades)
		r.Get("/trades/{id}", s.handleTrade)
		r.Get("/reports", s.handleReport)
		r.Get("/reports/export.csv", s.handleExportCSV)
		r.Get("/rules", s.handleRules)
		r.Put("/rules", s.handleUpdateRules)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
