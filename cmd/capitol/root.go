package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohammad-safakhou/capitol/config"
	"github.com/mohammad-safakhou/capitol/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var cfgPath string
	var root = &cobra.Command{
		Use:           "capitol",
		Short:         "State legislature dashboards and search",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/config.json)")

	root.AddCommand(serveCMD(&cfgPath), migrateCMD(&cfgPath), loadCMD(&cfgPath), reindexCMD(&cfgPath))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withEnv loads config and the logger, then runs fn with a context that
// is cancelled on SIGINT or SIGTERM.
func withEnv(cfgPath string, fn func(ctx context.Context, cfg *config.Config, logger *zap.Logger) error) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.General.LogLevel, cfg.General.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return fn(ctx, cfg, logger)
}
