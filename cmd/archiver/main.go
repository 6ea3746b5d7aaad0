package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"

	"github.com/okuznetsov/tgarchiver/internal/di"
	jobService "github.com/okuznetsov/tgarchiver/internal/modules/job/service"
	"github.com/okuznetsov/tgarchiver/internal/shared/config"
	httpServer "github.com/okuznetsov/tgarchiver/internal/transport/http"
	"github.com/okuznetsov/tgarchiver/internal/transport/telegram"
)

func main() {
	// Setup structured logging with multiple handlers using slog-multi
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	// Use Fanout to send logs to both handlers
	multiHandler := slogmulti.Fanout(textHandler, jsonHandler)
	logger := slog.New(multiHandler)
	slog.SetDefault(logger)

	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	// Get services from DI container
	cfg := do.MustInvoke[*config.Config](injector)
	jobs := do.MustInvoke[*jobService.Service](injector)
	server := do.MustInvoke[*httpServer.Server](injector)
	client := do.MustInvoke[*telegram.Client](injector)
	_ = do.MustInvoke[*telegram.Handler](injector) // Wire handler into client

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the job worker
	jobs.Start(ctx)

	// Start status HTTP server
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Failed to start status server", "error", err)
			os.Exit(1)
		}
	}()

	// Connect and listen for commands
	go func() {
		if err := client.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("Telegram client stopped", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Archiver started", "port", cfg.HTTPPort, "videos_dir", cfg.VideosDir)
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")
}
