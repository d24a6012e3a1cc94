package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/rotation-engine/internal/app"
	"github.com/riskibarqy/rotation-engine/internal/config"
	"github.com/riskibarqy/rotation-engine/internal/interfaces/cli"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 2
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	runner := cli.NewRunner(application.Services, os.Stdout, os.Stderr, logger)
	err = runner.Run(ctx, os.Args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		return 2
	case errors.Is(err, cli.ErrValidationFailed):
		logger.Warn("validation failed", "error", err)
		return 1
	default:
		logger.Error("command failed", "error", err)
		return 1
	}
}
