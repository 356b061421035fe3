package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lkalneus/tubefeed/app/api"
	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/feed"
	"github.com/lkalneus/tubefeed/app/notion"
	"github.com/lkalneus/tubefeed/app/tasks"
)

func main() {
	// Load configuration from environment variables and command-line flags
	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	if err := setupLogging(c); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	slog.Info("Starting TubeFeed", "version", c.Version, "channels", len(c.Channels))

	if len(c.Channels) == 0 {
		slog.Warn("No channels configured")
	}

	// Initialize core components
	fetcher := feed.NewFetcher(c)
	exporter := feed.NewExporter()
	generator := feed.NewGenerator(c)
	publisher := notion.NewPublisher(c)
	snapshot := feed.NewSnapshot()

	scheduler := tasks.NewScheduler(c, fetcher, exporter, generator, publisher, snapshot)

	if c.Once {
		slog.Info("Running a single fetch cycle")
		if err := scheduler.RunOnce(context.Background()); err != nil {
			slog.Error("Fetch cycle failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Start the daily scheduler
	slog.Info("Starting scheduler", "schedule_time", c.ScheduleTime, "timezone", c.Timezone)
	scheduler.Start()

	// Initialize HTTP server
	handler := api.NewHandler(snapshot, scheduler, c.Version)
	server := api.NewServer(handler, c.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port)
		slog.Info("Endpoints available", "feed", "/feed.rss", "export", "/feeds.json", "health", "/health")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("TubeFeed started successfully")

	var serverErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case serverErr = <-serverErrChan:
		slog.Error("Server error", "error", serverErr)
	}

	// Graceful shutdown
	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	scheduler.Stop()
	slog.Info("Shutdown complete")

	if serverErr != nil {
		os.Exit(1)
	}
}

// setupLogging configures the default logger. When LOG_FILE is set the
// output is mirrored to that file in addition to stdout.
func setupLogging(c *cfg.Cfg) error {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))

	return nil
}
