package main

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/freud/split-text-smartly/internal/adapters/mcp"
	"github.com/freud/split-text-smartly/internal/bootstrap"
	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/observability/logging"
)

var version = "dev"

func main() {
	cfg := config.Load()
	// stdout carries the protocol.
	logging.Install(os.Stderr, "mcp", cfg.LogLevel)

	app, err := bootstrap.New(cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	splitService, err := app.SplitService("mcp", nil)
	if err != nil {
		slog.Error("split_service_init_failed", "error", err)
		os.Exit(1)
	}

	s := mcpadapter.NewServer(mcpadapter.NewHandler(splitService, app.SplitUC), version)
	if err := server.ServeStdio(s); err != nil {
		slog.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
