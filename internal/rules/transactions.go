package rules

import "github.com/fieldline/retaildq/internal/table"

// TransactionRequired are the columns a candidate transaction must carry.
var TransactionRequired = []string{
	"transaction_id", "customer_id", "store_id", "product_id",
	"transaction_date", "channel", "quantity", "discount_pct",
}

// TransactionColumns is the canonical column order for accepted
// transactions. year_month is derived at acceptance time.
var TransactionColumns = []string{
	"transaction_id", "customer_id", "store_id", "product_id",
	"transaction_date", "channel", "quantity", "discount_pct", "year_month",
}

// ForTransactions builds the transaction rule set. Foreign keys resolve
// against the EXISTING customer/store/product tables only: a key that
// first appears in the same uncommitted batch (or a sibling batch) does
// not satisfy the check.
func ForTransactions(existing, customers, stores, products *table.Table) *RuleSet {
	return &RuleSet{
		Entity:  "transactions",
		Columns: TransactionColumns,
		Predicates: []Predicate{
			requiredPredicate(TransactionRequired),
			uniquePredicate("transaction_id", "transaction_id not unique", existing.KeySet("transaction_id")),
			numericRangePredicate("quantity", "Invalid quantity (1–50)", 1, 50),
			numericRangePredicate("discount_pct", "Invalid discount_pct (0–0.80)", 0, 0.80),
			enumPredicate("channel", "Invalid channel", Channels...),
			existsPredicate("customer_id", "customer_id does not exist", customers.KeySet("customer_id")),
			existsPredicate("store_id", "store_id does not exist", stores.KeySet("store_id")),
			existsPredicate("product_id", "product_id does not exist", products.KeySet("product_id")),
			storeOpeningPredicate(stores),
		},
		normalize: func(row table.Row) table.Row {
			normalizeNumber(row, "quantity")
			normalizeNumber(row, "discount_pct")
			if d, ok := table.Date(row.Get("transaction_date")); ok {
				row["transaction_date"] = table.FormatDate(d)
				row["year_month"] = table.MonthKey(d)
			}
			return row
		},
	}
}

// storeOpeningPredicate flags transactions dated strictly before their
// store's opening date. An unresolved store or an unparseable opening date
// also violates; a transaction dated exactly on the opening date passes.
func storeOpeningPredicate(stores *table.Table) Predicate {
	byID := stores.Index("store_id")
	return Predicate{
		Message: "transaction_date is before store opening_date",
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			for i, row := range batch {
				store, ok := byID[row.Get("store_id")]
				if !ok {
					mask[i] = true
					continue
				}
				opening, ok := table.Date(store.Get("opening_date"))
				if !ok {
					mask[i] = true
					continue
				}
				txDate, ok := table.Date(row.Get("transaction_date"))
				if ok && txDate.Before(opening) {
					mask[i] = true
				}
			}
			return mask
		},
	}
}
