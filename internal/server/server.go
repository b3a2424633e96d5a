// Package server exposes the diagnosis pipeline over HTTP: validation,
// tiered hints, the question list, and hint feedback.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/sqlmentor/internal/bank"
	"github.com/leapstack-labs/sqlmentor/internal/state"
	"github.com/leapstack-labs/sqlmentor/pkg/hint"
)

// Server wires the HTTP API over the hint service, question bank, and
// progress store.
type Server struct {
	addr    string
	router  chi.Router
	logger  *slog.Logger
	service *hint.Service
	bank    *bank.Bank
	store   state.Store
	dialect string
}

// New creates a server. store may be nil, disabling the feedback and
// progress endpoints' persistence (they then return 503).
func New(addr string, svc *hint.Service, b *bank.Bank, store state.Store, dialect string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		addr:    addr,
		logger:  logger,
		service: svc,
		bank:    b,
		store:   store,
		dialect: dialect,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Post("/validate", s.handleValidate)
		r.Post("/hint", s.handleHint)
		r.Post("/feedback", s.handleFeedback)
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
