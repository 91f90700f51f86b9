package rules

import "github.com/fieldline/retaildq/internal/table"

// ProductRequired are the columns a candidate product must carry.
var ProductRequired = []string{
	"product_id", "category", "unit_price", "is_discountable",
}

// ProductColumns is the canonical column order for accepted products.
// subcategory, brand and unit_cost are optional and pass through blank when
// the batch omits them.
var ProductColumns = []string{
	"product_id", "category", "subcategory", "brand",
	"unit_price", "unit_cost", "is_discountable",
}

// ForProducts builds the product rule set against the existing product table.
func ForProducts(existing *table.Table) *RuleSet {
	return &RuleSet{
		Entity:  "products",
		Columns: ProductColumns,
		Predicates: []Predicate{
			requiredPredicate(ProductRequired),
			unitPricePredicate(),
			uniquePredicate("product_id", "product_id not unique", existing.KeySet("product_id")),
			enumPredicate("category", "Invalid category", Categories...),
			discountablePredicate(),
		},
		normalize: func(row table.Row) table.Row {
			normalizeNumber(row, "unit_price")
			normalizeNumber(row, "unit_cost")
			if v, ok := table.Number(row.Get("is_discountable")); ok {
				row["is_discountable"] = table.FormatNumber(v)
			}
			return row
		},
	}
}

// unitPricePredicate flags prices that fail coercion, are non-positive,
// or exceed 5000. Zero is invalid; 5000 exactly is valid.
func unitPricePredicate() Predicate {
	return Predicate{
		Message: "Invalid unit_price",
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			for i, row := range batch {
				v, ok := table.Number(row.Get("unit_price"))
				if !ok || v <= 0 || v > 5000 {
					mask[i] = true
				}
			}
			return mask
		},
	}
}

// discountablePredicate accepts anything numerically coercible to exactly
// 0 or 1, so "1.0" passes while "yes" and "2" do not.
func discountablePredicate() Predicate {
	return Predicate{
		Message: "Invalid is_discountable (must be 0/1)",
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			for i, row := range batch {
				v, ok := table.Number(row.Get("is_discountable"))
				if !ok || (v != 0 && v != 1) {
					mask[i] = true
				}
			}
			return mask
		},
	}
}
