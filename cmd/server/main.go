package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"cipherspry/internal/app"
	"cipherspry/internal/config"
	"cipherspry/internal/hints"
	httpTransport "cipherspry/internal/transport/http"
	"cipherspry/internal/wordsource"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logger
	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting cipherspry server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"provider", cfg.Provider.URL,
	)

	// Word provider
	var provider wordsource.Provider
	if cfg.UsesStaticProvider() {
		provider = wordsource.NewStaticProvider(time.Now().UnixNano())
	} else {
		provider = wordsource.NewHTTPProvider(cfg.Provider.URL, cfg.Provider.Timeout, logger)
	}

	// Create session hub
	hintTable := hints.NewTable()
	hub := app.NewGameHub(app.HubConfig{
		Provider:     provider,
		Hints:        hintTable,
		TickInterval: cfg.Game.TickInterval,
		IdleTimeout:  cfg.Game.SessionIdleTimeout,
	}, logger)
	defer hub.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, hub, hintTable, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
