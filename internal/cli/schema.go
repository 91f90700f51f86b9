package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldline/retaildq/internal/rules"
	"github.com/fieldline/retaildq/internal/store"
	"github.com/fieldline/retaildq/internal/table"
)

// enumDomains maps enum-constrained columns to their allowed values,
// for the schema listing.
var enumDomains = map[string][]string{
	"gender":            rules.Genders,
	"loyalty_tier":      rules.LoyaltyTiers,
	"preferred_channel": rules.Channels,
	"channel":           rules.Channels,
	"region":            rules.Regions,
	"store_type":        rules.StoreTypes,
	"category":          rules.Categories,
	"is_discountable":   rules.Discountables,
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [table]",
		Short: "Show table schemas and enum domains",
		Long: `List every store table with its column order, or one table's columns
with the enum domain each constrained column accepts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			if len(args) == 0 {
				listing := table.New("table", "columns")
				for _, name := range store.TableNames() {
					cols, _ := store.Columns(name)
					listing.Append(table.Row{
						"table":   name,
						"columns": strings.Join(cols, ", "),
					})
				}
				return formatter.Table(listing)
			}

			cols, err := store.Columns(args[0])
			if err != nil {
				return err
			}
			listing := table.New("column", "domain")
			for _, c := range cols {
				domain := ""
				if values, ok := enumDomains[c]; ok {
					domain = strings.Join(values, "|")
				}
				listing.Append(table.Row{"column": c, "domain": domain})
			}
			return formatter.Table(listing)
		},
	}

	return cmd
}
