package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/medtrack/medication-interaction-api/internal/auth"
	"github.com/medtrack/medication-interaction-api/internal/config"
	"github.com/medtrack/medication-interaction-api/internal/discovery"
	"github.com/medtrack/medication-interaction-api/internal/handler"
	"github.com/medtrack/medication-interaction-api/internal/logging"
	"github.com/medtrack/medication-interaction-api/internal/repository"
	"github.com/medtrack/medication-interaction-api/internal/server"
	"github.com/medtrack/medication-interaction-api/internal/usecase"
	"github.com/medtrack/medication-interaction-api/internal/validation"
)

const startupTimeout = 10 * time.Second

func main() {
	logger := logging.New(os.Getenv("ENVIRONMENT"))

	cfg := config.Load(logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	if err := client.Ping(startupCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(startupCtx, logger, db)
	medicationRepo := repository.NewMedicationMongoRepository(startupCtx, logger, db)

	jwtAuth := auth.NewJWTAuthenticator()

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, &cfg.Token)
	medicationUsecase := usecase.NewMedicationUsecase(medicationRepo)

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create validator")
	}

	authHandler := handler.NewAuthHandler(authUsecase, validator, logger)
	medicationHandler := handler.NewMedicationHandler(medicationUsecase, validator, logger)
	healthHandler := handler.NewHealthHandler()

	srv := server.New(cfg, logger, jwtAuth, authHandler, medicationHandler, healthHandler)

	var registry *discovery.ServiceRegistry
	if cfg.Consul.Enabled {
		registry, err = discovery.NewServiceRegistry(&cfg.Consul, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create consul client")
		}

		if err := registry.Register(&cfg.Consul, cfg.Server.Host, cfg.Server.Port); err != nil {
			logger.Fatal().Err(err).Msg("failed to register with consul")
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server failed")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	if registry != nil {
		registry.Deregister()
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}

	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongodb disconnect error")
	}

	logger.Info().Msg("server stopped")
}
