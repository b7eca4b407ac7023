package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thoughtforge/thoughtforge/app/api"
	"github.com/thoughtforge/thoughtforge/app/cfg"
	"github.com/thoughtforge/thoughtforge/app/content"
	"github.com/thoughtforge/thoughtforge/app/database"
	"github.com/thoughtforge/thoughtforge/app/tasks"
	"github.com/thoughtforge/thoughtforge/app/worker"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting ThoughtForge server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	basisRepo := database.NewBasisRepository(db)
	jobRepo := database.NewJobRepository(db)
	thoughtRepo := database.NewThoughtRepository(db)

	generator := content.NewGenerator(content.Mode(appCfg.AIMode))
	runner := worker.NewRunner(jobRepo, basisRepo, thoughtRepo, generator)

	var scheduler tasks.TaskSchedulerInterface
	if appCfg.SchedulerInterval > 0 {
		slog.Info("Starting background scheduler",
			"interval", appCfg.SchedulerInterval, "workers", appCfg.WorkerCount)
		scheduler = tasks.NewScheduler(jobRepo, runner)
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		slog.Info("Background scheduler disabled (SCHEDULER_INTERVAL not set)")
	}

	handler := api.NewHandler(db, basisRepo, jobRepo, thoughtRepo, runner, appCfg.WorkerID)
	server := api.NewServer(handler, appCfg.SchedulerKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
