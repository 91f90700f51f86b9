package store

import (
	"fmt"
	"slices"

	"github.com/fieldline/retaildq/internal/rules"
	"github.com/fieldline/retaildq/internal/view"
)

// Entity table names.
const (
	TableCustomers    = "customers"
	TableStores       = "stores"
	TableProducts     = "products"
	TableTransactions = "transactions"
	TableMergedView   = "merged_transactions"
	TableBatches      = "batches"
)

// batchColumns is the audit-log column order.
var batchColumns = []string{
	"batch_id", "entity", "received", "accepted", "rejected", "received_at",
}

// tableColumns maps every loadable/appendable table to its column order.
// Acts as the whitelist for all SQL built from table names.
var tableColumns = map[string][]string{
	TableCustomers:    rules.CustomerColumns,
	TableStores:       rules.StoreColumns,
	TableProducts:     rules.ProductColumns,
	TableTransactions: rules.TransactionColumns,
	TableMergedView:   view.MergedColumns,
	TableBatches:      batchColumns,

	"rejected_" + TableCustomers:    rejectionColumns(rules.CustomerColumns),
	"rejected_" + TableStores:       rejectionColumns(rules.StoreColumns),
	"rejected_" + TableProducts:     rejectionColumns(rules.ProductColumns),
	"rejected_" + TableTransactions: rejectionColumns(rules.TransactionRequired),
}

func rejectionColumns(entityCols []string) []string {
	cols := slices.Clone(entityCols)
	return append(cols, "rejection_reason", "rejected_at")
}

// Columns returns the declared column order for a known table name.
func Columns(name string) ([]string, error) {
	cols, ok := tableColumns[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	return cols, nil
}

// TableNames lists every table the store exposes, in a stable order.
func TableNames() []string {
	names := make([]string, 0, len(tableColumns))
	for name := range tableColumns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
