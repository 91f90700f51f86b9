package cli

import (
	"github.com/spf13/cobra"
)

// NewViewCommand creates the view command.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Rebuild the denormalized merged-transactions view",
		Long: `Regenerate merged_transactions by joining every accepted transaction to
its product, store and customer attributes. The view is derived data and
is fully replaced on each rebuild.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := newPipeline(st, cfg).RebuildView(cmd.Context()); err != nil {
				return err
			}

			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return formatter.Success("merged view rebuilt")
		},
	}

	return cmd
}
