/*
Package main is the entry point for the DoodlePair pairing server.

It is responsible for loading configuration, initializing the global logging
system, opening the room and user store (PostgreSQL, or in-memory in
development without a DATABASE_URL), setting up the HTTP server, and
gracefully handling operating system interrupt signals (SIGINT, SIGTERM).
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doodlepair/internal/app/db"
	"doodlepair/internal/app/db/memdb"
	"doodlepair/internal/app/pairing"
	"doodlepair/internal/app/room"
	"doodlepair/internal/app/user"
	"doodlepair/internal/configs"
	"doodlepair/internal/handler"
	"doodlepair/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the room and user store.
	var rooms room.Store
	var users user.Store

	if cfg.DatabaseDSN != "" {
		pool, err := db.NewPool(cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "Failed to connect to database")
		}
		defer pool.Close()

		store := db.NewStore(pool)
		rooms, users = store, store
		logx.Info("Connected to PostgreSQL store")
	} else {
		store := memdb.NewStore()
		rooms, users = store, store
		logx.Warn("DATABASE_URL not set; using in-memory store (development only)")
	}

	deps := &handler.AppDeps{
		Config:      cfg,
		Engine:      pairing.NewEngine(rooms, users),
		Provisioner: user.NewProvisioner(users),
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("DoodlePair Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
