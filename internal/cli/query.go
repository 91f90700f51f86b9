package cli

import (
	"github.com/spf13/cobra"
)

// NewQueryCommand creates the ad-hoc query console command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a read-only SQL query against the store",
		Long: `Run a single SELECT statement against the Reference Store and print the
result. Writes are refused; the append-only contract stays with ingest.

Example:
  retaildq query "SELECT region, COUNT(*) AS n FROM customers GROUP BY region"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := st.Query(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			formatter.VerboseLog("%d row(s)", result.Len())
			return formatter.Table(result)
		},
	}

	return cmd
}
