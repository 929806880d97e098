package main

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/capitol/config"
	"github.com/mohammad-safakhou/capitol/internal/search"
	"github.com/mohammad-safakhou/capitol/internal/store"
	"github.com/mohammad-safakhou/capitol/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func reindexCMD(cfgPath *string) *cobra.Command {
	var query, scope string
	var reindex = &cobra.Command{
		Use:   "reindex",
		Short: "Build the bill search index from the database and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(*cfgPath, func(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
				st, err := store.NewWithDSN(ctx, cfg.Storage.Postgres.DSN())
				if err != nil {
					return err
				}
				defer st.Close()

				idx := search.NewIndex(st, st, cfg.Search.IndexPath, logger.Named("index"))
				defer idx.Close()
				n, err := idx.Rebuild(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "indexed %d bills\n", n)

				if query == "" {
					return nil
				}
				bills, err := idx.SearchBills(ctx, query, scope, 10)
				if err != nil {
					return err
				}
				for _, b := range bills {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", b.State, b.Session, b.BillID, b.Title)
				}
				return nil
			})
		},
	}
	reindex.Flags().StringVar(&query, "query", "", "run a trial search against the fresh index")
	reindex.Flags().StringVar(&scope, "scope", models.AllRegions, "region code for the trial search")

	return reindex
}
