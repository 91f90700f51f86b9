package rules

import "github.com/fieldline/retaildq/internal/table"

// CustomerColumns is the canonical column order for accepted customers.
var CustomerColumns = []string{
	"customer_id", "gender", "age", "join_date",
	"loyalty_tier", "region", "city", "preferred_channel",
}

// ForCustomers builds the customer rule set against the existing customer
// table. Predicate order is part of the contract.
func ForCustomers(existing *table.Table, clock Clock) *RuleSet {
	return &RuleSet{
		Entity:  "customers",
		Columns: CustomerColumns,
		Predicates: []Predicate{
			requiredPredicate(CustomerColumns),
			numericRangePredicate("age", "Age out of range (16–90)", 16, 90),
			pastDatePredicate("join_date", "join_date is invalid or in the future", clock),
			uniquePredicate("customer_id", "customer_id not unique", existing.KeySet("customer_id")),
			enumPredicate("gender", "Invalid gender", Genders...),
			enumPredicate("loyalty_tier", "Invalid loyalty_tier", LoyaltyTiers...),
			enumPredicate("preferred_channel", "Invalid preferred_channel", Channels...),
			enumPredicate("region", "Invalid region", Regions...),
		},
		normalize: func(row table.Row) table.Row {
			normalizeNumber(row, "age")
			normalizeDate(row, "join_date")
			row["city"] = table.NormalizeText(row.Get("city"))
			return row
		},
	}
}
