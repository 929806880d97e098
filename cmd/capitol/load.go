package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mohammad-safakhou/capitol/config"
	"github.com/mohammad-safakhou/capitol/internal/fixtures"
	"github.com/mohammad-safakhou/capitol/internal/store"
	"github.com/mohammad-safakhou/capitol/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func loadCMD(cfgPath *string) *cobra.Command {
	var skipReport bool
	var load = &cobra.Command{
		Use:   "load FIXTURE...",
		Short: "Import region fixtures and rebuild their report documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(*cfgPath, func(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
				st, err := store.NewWithDSN(ctx, cfg.Storage.Postgres.DSN())
				if err != nil {
					return err
				}
				defer st.Close()

				var reports repository.ReportRepository
				if !skipReport {
					reports, err = repository.NewReportRepository(ctx, repository.RepoType(cfg.Storage.Reports), cfg.Storage, st.DB)
					if err != nil {
						return err
					}
					if c, ok := reports.(io.Closer); ok {
						defer c.Close()
					}
				}

				for _, path := range args {
					if err := loadFixture(ctx, st, reports, path, logger); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	load.Flags().BoolVar(&skipReport, "skip-report", false, "import data without rewriting the report document")

	return load
}

func loadFixture(ctx context.Context, st *store.Store, reports repository.ReportRepository, path string, logger *zap.Logger) error {
	data, err := fixtures.Load(path)
	if err != nil {
		return err
	}
	abbr := data.Metadata.Abbr
	if err := st.LoadRegion(ctx, data); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	logger.Info("region loaded",
		zap.String("abbr", abbr),
		zap.Int("sessions", len(data.Sessions)),
		zap.Int("legislators", len(data.Legislators)),
		zap.Int("committees", len(data.Committees)),
		zap.Int("bills", len(data.Bills)))

	if reports == nil {
		return nil
	}
	if err := reports.SaveReport(ctx, abbr, fixtures.BuildReport(data)); err != nil {
		return fmt.Errorf("save report %s: %w", abbr, err)
	}
	logger.Info("report saved", zap.String("abbr", abbr))
	return nil
}
