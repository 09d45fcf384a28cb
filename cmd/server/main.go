// Package main initializes and starts the workout tracker HTTP server,
// setting up configuration, logging, database connections, repositories,
// services and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/WorkoutTracker/internal/auth"
	"github.com/atinyakov/WorkoutTracker/internal/config"
	"github.com/atinyakov/WorkoutTracker/internal/db"
	"github.com/atinyakov/WorkoutTracker/internal/logger"
	"github.com/atinyakov/WorkoutTracker/internal/repository"
	"github.com/atinyakov/WorkoutTracker/internal/server/handler/http"
	"github.com/atinyakov/WorkoutTracker/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()

	// Initialize repositories for users and workouts.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	workoutRepo := repository.NewPostgresWorkoutRepository(postgresDB)

	// Initialize business-logic services.
	tokens := auth.NewTokenManager(options.JWTSecret, options.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	workoutService := service.NewWorkoutService(workoutRepo)

	// Create HTTP handlers for auth and workout endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}
	workoutHandler := &http.WorkoutHandler{WorkoutService: workoutService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, workoutHandler, http.RouterConfig{
		Logger: zapLogger,
		Tokens: tokens,
		Ready: func(ctx context.Context) error {
			return db.Ping(ctx, postgresDB)
		},
		RateRPS:      options.RateLimitRPS,
		RateBurst:    options.RateLimitBurst,
		MaxBodyBytes: options.MaxBodyBytes,
	})

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server",
			zap.String("addr", options.Port),
			zap.Bool("tls", options.TLSEnabled()),
		)
		if options.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(options.TLSCertFile, options.TLSKeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), options.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
