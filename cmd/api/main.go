package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocktrack/internal/category"
	"stocktrack/internal/config"
	"stocktrack/internal/database"
	"stocktrack/internal/handler"
	"stocktrack/internal/inventory"
	"stocktrack/internal/router"
	"stocktrack/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting stocktrack API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize record store and the session state
	recordStore := store.NewProductStore(pool, logger)
	notifier := inventory.NewLogNotifier(logger)
	inv := inventory.New(recordStore, notifier, cfg.Inventory.DefaultLowStockThreshold, logger)

	// Load the full record set once at session start. A failed load leaves
	// an empty but usable service; the error stays visible via the
	// container and no retry is attempted.
	if err := inv.Load(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial inventory load failed, starting with empty set")
	}

	// Seed the category registry from config plus the loaded records
	registry := category.NewRegistry(cfg.Inventory.CategorySeed)
	registry.MergeProducts(inv.Products())

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(inv, registry, logger)
	dashboardHandler := handler.NewDashboardHandler(inv, cfg.Inventory.CriticalTopN, logger)
	categoryHandler := handler.NewCategoryHandler(registry, logger)

	// Initialize router
	mux := router.New(productHandler, dashboardHandler, categoryHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
