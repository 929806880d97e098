package main

import (
	"context"

	"github.com/mohammad-safakhou/capitol/config"
	"github.com/mohammad-safakhou/capitol/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCMD(cfgPath *string) *cobra.Command {
	var migDir string
	var direction string
	var steps int

	var migrate = &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(*cfgPath, func(_ context.Context, cfg *config.Config, logger *zap.Logger) error {
				if migDir == "" {
					migDir = store.DefaultMigrationsDir
				}
				if err := store.Migrate(migDir, cfg.Storage.Postgres.DSN(), direction, steps); err != nil {
					return err
				}
				logger.Info("migrations applied", zap.String("direction", direction), zap.Int("steps", steps))
				return nil
			})
		},
	}
	migrate.Flags().StringVar(&migDir, "dir", store.DefaultMigrationsDir, "migrations source (file://migrations)")
	migrate.Flags().StringVar(&direction, "direction", "up", "up or down")
	migrate.Flags().IntVar(&steps, "steps", 0, "number of steps (0 = all)")

	return migrate
}
