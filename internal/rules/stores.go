package rules

import "github.com/fieldline/retaildq/internal/table"

// StoreColumns is the canonical column order for accepted stores.
var StoreColumns = []string{
	"store_id", "store_type", "region", "city", "opening_date",
}

// ForStores builds the store rule set against the existing store table.
func ForStores(existing *table.Table, clock Clock) *RuleSet {
	return &RuleSet{
		Entity:  "stores",
		Columns: StoreColumns,
		Predicates: []Predicate{
			requiredPredicate(StoreColumns),
			uniquePredicate("store_id", "store_id not unique", existing.KeySet("store_id")),
			pastDatePredicate("opening_date", "opening_date is invalid or in the future", clock),
			enumPredicate("store_type", "Invalid store_type", StoreTypes...),
			enumPredicate("region", "Invalid region", Regions...),
		},
		normalize: func(row table.Row) table.Row {
			normalizeDate(row, "opening_date")
			row["city"] = table.NormalizeText(row.Get("city"))
			return row
		},
	}
}
