package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/barkeeper/internal/client/app"
	"github.com/iudanet/barkeeper/internal/client/cli"
	"github.com/iudanet/barkeeper/internal/client/iocli"
	"github.com/iudanet/barkeeper/internal/config"
	"github.com/iudanet/barkeeper/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cli.New(iocli.NewStdio(), open)
	root := c.RootCommand(fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit))

	err := root.ExecuteContext(ctx)
	if closeErr := c.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to close client: %v\n", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// open загружает конфигурацию с учётом флагов и собирает клиента
func open(ctx context.Context, g cli.Globals) (cli.Deps, io.Closer, error) {
	cfg, err := config.LoadClient(g.ConfigPath)
	if err != nil {
		return cli.Deps{}, nil, err
	}
	if g.ServerURL != "" {
		cfg.ServerURL = g.ServerURL
	}
	if g.DBPath != "" {
		cfg.DBPath = g.DBPath
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cli.Deps{}, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return cli.Deps{}, nil, err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return cli.Deps{}, nil, err
	}

	return cli.Deps{
		Auth:     a.Auth,
		Bars:     a.Bars,
		POS:      a.State,
		Mappings: a.Mappings,
		Sync:     a.Sync,
	}, a, nil
}
