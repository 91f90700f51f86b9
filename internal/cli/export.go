package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/retaildq/internal/csvio"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <table> <csv-file>",
		Short: "Export a table to CSV",
		Long: `Write the full contents of any store table - including the rejection
audit tables and merged_transactions - to a CSV file in insertion order.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			t, err := st.LoadTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := csvio.WriteFile(args[1], t); err != nil {
				return err
			}

			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return formatter.Success(fmt.Sprintf("wrote %d row(s) from %s to %s", t.Len(), args[0], args[1]))
		},
	}

	return cmd
}
