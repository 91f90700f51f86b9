package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/retaildq/internal/pipeline"
	"github.com/fieldline/retaildq/internal/seed"
	"github.com/fieldline/retaildq/internal/table"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cfg := seed.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate synthetic retail data and ingest it",
		Long: `Generate a deterministic synthetic dataset (customers, stores, products,
transactions) and submit it through the normal validation pipeline. The
same seed always produces the same dataset.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, appCfg, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			ds := seed.Generate(cfg)
			p := newPipeline(st, appCfg)

			batches := []struct {
				entity pipeline.Entity
				batch  *table.Table
			}{
				{pipeline.EntityCustomers, ds.Customers},
				{pipeline.EntityStores, ds.Stores},
				{pipeline.EntityProducts, ds.Products},
				{pipeline.EntityTransactions, ds.Transactions},
			}

			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			for _, b := range batches {
				outcome, err := p.Submit(cmd.Context(), b.entity, b.batch)
				if err != nil {
					return fmt.Errorf("failed to ingest seeded %s: %w", b.entity, err)
				}
				if err := formatter.Success(outcomeReport(outcome)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.Customers, "customers", cfg.Customers, "number of customers")
	cmd.Flags().IntVar(&cfg.Stores, "stores", cfg.Stores, "number of stores")
	cmd.Flags().IntVar(&cfg.Products, "products", cfg.Products, "number of products")
	cmd.Flags().IntVar(&cfg.Transactions, "transactions", cfg.Transactions, "number of transactions")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")

	return cmd
}
