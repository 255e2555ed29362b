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

	"github.com/freud/split-text-smartly/internal/bootstrap"
	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/observability/logging"
	"github.com/freud/split-text-smartly/internal/observability/metrics"
)

const serviceName = "worker"

func main() {
	cfg := config.Load()
	logging.Install(os.Stdout, serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	queue, err := app.Queue()
	if err != nil {
		slog.Error("queue_init_failed", "error", err)
		os.Exit(1)
	}

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	splitUC := app.SplitUC.WithObserver("nats", workerMetrics)

	mux := http.NewServeMux()
	mux.Handle("/metrics", workerMetrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker_metrics_server_failed", "error", err)
		}
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject, "queue_group", cfg.NATSQueueGroup)
	err = queue.ServeSplitRequests(ctx, func(handlerCtx context.Context, req domain.SplitRequest) (*domain.SplitResult, error) {
		start := time.Now()
		workerMetrics.StartRequest()
		result, err := splitUC.Split(handlerCtx, req)
		workerMetrics.FinishRequest(serviceName, time.Since(start), err)
		return result, err
	})
	if err != nil {
		slog.Error("worker_serve_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
