package main

import (
	"fmt"
	"os"

	"github.com/freud/split-text-smartly/internal/config"
	"github.com/freud/split-text-smartly/internal/observability/logging"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logging.Install(os.Stderr, "textsplit", cfg.LogLevel)

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
