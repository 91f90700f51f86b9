package cli

import (
	"github.com/spf13/cobra"

	"github.com/fieldline/retaildq/internal/csvio"
	"github.com/fieldline/retaildq/internal/pipeline"
)

// NewValidateCommand creates the validate command: a dry run that reports
// the accept/reject partition without persisting anything.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <entity> <csv-file>",
		Short: "Validate a candidate batch without persisting it",
		Long: `Run a candidate CSV batch through the entity's rule set against the
current reference tables and report the partition. Nothing is written;
a corrected batch can be resubmitted with ingest.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := pipeline.ParseEntity(args[0])
			if err != nil {
				return err
			}

			batch, err := csvio.ReadFile(args[1])
			if err != nil {
				return err
			}

			st, cfg, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := newPipeline(st, cfg).Validate(cmd.Context(), entity, batch)
			if err != nil {
				return err
			}

			report := ingestReport{
				Entity:   string(entity),
				Received: batch.Len(),
				Accepted: res.Accepted.Len(),
				Rejected: len(res.Rejected),
			}
			keyCol := keyColumn(entity)
			for _, rej := range res.Rejected {
				report.Reasons = append(report.Reasons, rejectedLine{
					Key:    rej.Row.Get(keyCol),
					Reason: rej.Reason,
				})
			}

			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return formatter.Success(report)
		},
	}

	return cmd
}
