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

	httpadapter "github.com/freud/split-text-smartly/internal/adapters/http"
	"github.com/freud/split-text-smartly/internal/bootstrap"
	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/observability/logging"
	"github.com/freud/split-text-smartly/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logging.Install(os.Stdout, "api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	splitService, err := app.SplitService("http", httpMetrics)
	if err != nil {
		slog.Error("split_service_init_failed", "error", err)
		os.Exit(1)
	}

	router := httpadapter.NewRouter(cfg, splitService, app.DocumentService(splitService), app.SplitUC, httpMetrics).Handler()
	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort, "backend", cfg.SplitBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_failed", "error", err)
	}
}
