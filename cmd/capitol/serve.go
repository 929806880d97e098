package main

import (
	"context"

	"github.com/mohammad-safakhou/capitol/config"
	srv "github.com/mohammad-safakhou/capitol/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCMD(cfgPath *string) *cobra.Command {
	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(*cfgPath, func(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
				if serveAddr != "" {
					cfg.General.Listen = serveAddr
				}
				return srv.Run(ctx, cfg, logger)
			})
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides general.listen)")

	return serve
}
