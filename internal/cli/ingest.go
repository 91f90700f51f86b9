package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldline/retaildq/internal/csvio"
	"github.com/fieldline/retaildq/internal/pipeline"
)

// ingestReport is the per-batch summary printed after a submission.
type ingestReport struct {
	BatchID  string         `json:"batch_id,omitempty"`
	Entity   string         `json:"entity"`
	Received int            `json:"received"`
	Accepted int            `json:"accepted"`
	Rejected int            `json:"rejected"`
	Reasons  []rejectedLine `json:"reasons,omitempty"`
}

type rejectedLine struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

func (r ingestReport) String() string {
	var b strings.Builder
	if r.BatchID != "" {
		fmt.Fprintf(&b, "batch %s ", r.BatchID)
	}
	fmt.Fprintf(&b, "(%s): received=%d accepted=%d rejected=%d",
		r.Entity, r.Received, r.Accepted, r.Rejected)
	for _, line := range r.Reasons {
		fmt.Fprintf(&b, "\n  %s: %s", line.Key, line.Reason)
	}
	return b.String()
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	var noRetier bool

	cmd := &cobra.Command{
		Use:   "ingest <entity> <csv-file>",
		Short: "Validate a candidate batch and append the accepted rows",
		Long: `Validate a CSV candidate batch against the current reference tables and
append accepted rows to the store. Rejected rows go to the entity's
rejection audit table with their accumulated reasons and a rejected_at
timestamp.

Transaction batches additionally trigger a loyalty-tier recomputation and
a merged-view rebuild unless --no-retier (or configuration) disables it.`,
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

			if noRetier {
				cfg.RetierOnIngest = false
			}
			p := newPipeline(st, cfg)

			outcome, err := p.Submit(cmd.Context(), entity, batch)
			if err != nil {
				return err
			}

			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return formatter.Success(outcomeReport(outcome))
		},
	}

	cmd.Flags().BoolVar(&noRetier, "no-retier", false, "skip tier recomputation and view rebuild after transaction batches")

	return cmd
}

// outcomeReport flattens a pipeline outcome for display.
func outcomeReport(o *pipeline.Outcome) ingestReport {
	report := ingestReport{
		BatchID:  o.BatchID,
		Entity:   string(o.Entity),
		Received: o.Received,
		Accepted: o.Accepted,
		Rejected: o.Rejected,
	}
	keyCol := keyColumn(o.Entity)
	for _, rej := range o.Rejections {
		report.Reasons = append(report.Reasons, rejectedLine{
			Key:    rej.Row.Get(keyCol),
			Reason: rej.Reason,
		})
	}
	return report
}

// keyColumn names the primary-key column for an entity.
func keyColumn(e pipeline.Entity) string {
	switch e {
	case pipeline.EntityCustomers:
		return "customer_id"
	case pipeline.EntityStores:
		return "store_id"
	case pipeline.EntityProducts:
		return "product_id"
	case pipeline.EntityTransactions:
		return "transaction_id"
	}
	return ""
}
