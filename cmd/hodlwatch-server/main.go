package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hodlwatch/hodlwatch/internal/app"
	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/server"
)

func main() {
	// Local development convenience; deployed environments set real env vars
	_ = godotenv.Load()

	configPath := os.Getenv("HODL_CONFIG")

	a, err := app.NewApp(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := a.RegisterWebhook(ctx); err != nil {
		cancel()
		a.Logger.Fatal().Err(err).Msg("Webhook registration failed")
	}
	cancel()

	srv := server.NewServer(a)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	a.Logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)).
		Msg("Server ready")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	a.Logger.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	common.PrintShutdownBanner(a.Logger)
}
