// Package main is the entry point for the admin dashboard server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"knkadmin/internal/config"
	"knkadmin/internal/domain"
	"knkadmin/internal/domain/world"
	v1 "knkadmin/internal/infrastructure/http/v1"
	"knkadmin/internal/infrastructure/session"
	"knkadmin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Infow("starting admin server", "env", cfg.Env, "test_data", cfg.UseTestData)

	// --- Entity registry ---
	registry, err := world.NewRegistry()
	if err != nil {
		log.Fatalw("invalid entity configuration", "error", err)
	}
	log.Infow("entity registry sealed", "entities", len(registry.List()))

	// --- Data source ---
	source, checks, err := setupDataSource(cfg, registry, log)
	if err != nil {
		log.Fatalw("failed to set up data source", "error", err)
	}
	service := domain.NewEntityService(registry, source, log)

	// --- Form sessions ---
	sessions := session.NewStore(cfg.Session.Max, cfg.Session.TTL)
	defer sessions.Close()

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Logger:          log,
		Service:         service,
		Sessions:        sessions,
		Locale:          cfg.Locale,
		ReadinessChecks: checks,
		Debug:           cfg.Development(),
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      gzhttp.GzipHandler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.API.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
