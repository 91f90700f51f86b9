package cli

import (
	"github.com/spf13/cobra"
)

// NewRetierCommand creates the retier command.
func NewRetierCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retier",
		Short: "Recompute loyalty tiers for the whole customer population",
		Long: `Recompute every customer's loyalty tier from all accepted transactions:
average monthly spend, ranked descending, split at the 25/50/75 percent
floor cuts into Platinum/Gold/Silver/Bronze. Prior tiers are discarded.
Rerunning against unchanged data yields identical assignments.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := newPipeline(st, cfg).Retier(cmd.Context()); err != nil {
				return err
			}

			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return formatter.Success("loyalty tiers recomputed")
		},
	}

	return cmd
}
