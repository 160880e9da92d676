package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gerenciador-gastos/internal/config"
	"gerenciador-gastos/internal/database"
	"gerenciador-gastos/internal/handlers"
	"gerenciador-gastos/internal/logger"
	"gerenciador-gastos/internal/repository"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run serves until SIGINT or SIGTERM and returns once in-flight requests
// have drained, so deferred cleanup always runs.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New()
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log := logger.NewFromConfig(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return err
	}

	var datasets repository.DatasetRepository
	switch cfg.DataBackend {
	case "sqlite":
		db, err := database.New(database.MemoryDSN(cfg.SQLiteName))
		if err != nil {
			log.Error().Err(err).Msg("Failed to open SQLite database")
			return err
		}
		defer db.Close()
		datasets = repository.NewSQLiteDatasetRepository(db)
	default:
		datasets = repository.NewMemoryDatasetRepository()
	}

	h := handlers.New(datasets, handlers.Options{
		MaxUploadBytes:    cfg.MaxUploadBytes(),
		LegacyErrorStatus: cfg.LegacyErrorStatus,
	})

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        handlers.NewRouter(h, log, cfg.CORSOrigin),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.Error().Err(err).Str("addr", cfg.Addr()).Msg("Failed to listen")
		return err
	}

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("addr", ln.Addr().String()).
		Str("backend", cfg.DataBackend).
		Str("cors_origin", cfg.CORSOrigin).
		Msg("Server starting")

	if err := serve(ctx, srv, ln, log, cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}

// serve accepts connections on ln until ctx is cancelled, then shuts srv
// down and waits for in-flight requests, up to shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, log zerolog.Logger, shutdownTimeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Info().Msg("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}
