// Package main is the entry point for the stockroom API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stockroom/internal/config"
	"stockroom/internal/domain/audit"
	"stockroom/internal/domain/inventory"
	v1 "stockroom/internal/infrastructure/http/v1"
	"stockroom/internal/seed"
	"stockroom/pkg/logger"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	} else {
		log.Info("loaded .env file (overwriting existing env vars)")
	}

	ctx := context.Background()
	log.Infow("starting stockroom server",
		"port", cfg.Server.Port,
		"env", cfg.Logging.Env,
		"audit_compress_threshold", cfg.Audit.CompressThreshold,
	)

	// --- Inventory ---
	service := inventory.NewService(log)

	journal, err := audit.NewJournal(cfg.Audit.CompressThreshold)
	if err != nil {
		log.Fatalw("failed to create audit journal", "error", err)
	}
	defer func() { _ = journal.Close() }()
	audit.Attach(service, journal)

	if cfg.SeedFile != "" {
		n, err := seed.LoadFile(ctx, service, cfg.SeedFile)
		if err != nil {
			log.Fatalw("failed to load seed file", "path", cfg.SeedFile, "loaded", n, "error", err)
		}
		log.Infow("seed file loaded", "path", cfg.SeedFile, "items", n)
	}

	// --- Router ---
	mode := gin.ReleaseMode
	if cfg.Logging.Development() {
		mode = gin.DebugMode
	}
	router := v1.NewRouter(v1.RouterConfig{
		Service: service,
		Journal: journal,
		Logger:  log,
		Mode:    mode,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Infow("server stopped", "items", service.Count(), "audit_entries", journal.Len())
}
