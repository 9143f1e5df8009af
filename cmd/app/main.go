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

	"numis_go/internal/app"
)

func main() {
	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Change-notification endpoint for the desktop shell.
	// Localhost only; nothing here is meant to be reachable remotely.
	mux := http.NewServeMux()
	mux.Handle("/events", bootstrap.Hub)

	srv := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", bootstrap.Config.Server.Port),
		Handler: mux,
	}
	go func() {
		slog.Info("event server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("event server failed", slog.Any("error", err))
			stop()
		}
	}()

	slog.Info("collection manager ready",
		slog.String("app", bootstrap.Config.App.Name),
		slog.String("version", bootstrap.Config.App.Version))

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("event server shutdown", slog.Any("error", err))
	}
	bootstrap.Hub.Close()
}
