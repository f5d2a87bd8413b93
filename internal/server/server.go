package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/medtrack/medication-interaction-api/internal/auth"
	"github.com/medtrack/medication-interaction-api/internal/config"
	"github.com/medtrack/medication-interaction-api/internal/handler"
	"github.com/medtrack/medication-interaction-api/internal/middleware"
)

// Server wraps the HTTP server and its routing.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	logger     *zerolog.Logger
}

// New builds the router and the HTTP server. Mutating medication routes sit
// behind the bearer-token gate; reads and the auth routes do not.
func New(
	cfg *config.Config,
	logger *zerolog.Logger,
	jwtAuth auth.JWTAuthenticator,
	authHandler *handler.AuthHandler,
	medicationHandler *handler.MedicationHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(logger))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/medication/count", medicationHandler.Count)
	router.Get("/medication/search/{name}", medicationHandler.Search)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtAuth, cfg.Token.AccessTokenSecret))
		r.Post("/medication", medicationHandler.Create)
		r.Post("/medications", medicationHandler.CreateBulk)
		r.Delete("/medication/{id}", medicationHandler.Delete)
	})

	router.Get("/health", healthHandler.Check)

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		router: router,
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts serving and blocks until the listener closes.
func (s *Server) Run() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
