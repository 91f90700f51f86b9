package testutil

import (
	"fmt"

	"github.com/fieldline/retaildq/internal/table"
)

// Batch builds a table from a column list and rows given as value slices,
// in the column order. Shorter rows leave trailing columns absent.
func Batch(columns []string, rows ...[]string) *table.Table {
	t := table.New(columns...)
	for _, values := range rows {
		row := make(table.Row, len(columns))
		for i, v := range values {
			if i >= len(columns) {
				break
			}
			row[columns[i]] = v
		}
		t.Append(row)
	}
	return t
}

// Customer builds a valid customer row; override fields inline as needed.
func Customer(id string, overrides ...func(table.Row)) table.Row {
	row := table.Row{
		"customer_id":       id,
		"gender":            "F",
		"age":               "34",
		"join_date":         "2023-05-10",
		"loyalty_tier":      "Bronze",
		"region":            "North",
		"city":              "Northville",
		"preferred_channel": "Online",
	}
	for _, o := range overrides {
		o(row)
	}
	return row
}

// Store builds a valid store row.
func Store(id string, overrides ...func(table.Row)) table.Row {
	row := table.Row{
		"store_id":     id,
		"store_type":   "Mall",
		"region":       "North",
		"city":         "Northville",
		"opening_date": "2020-01-15",
	}
	for _, o := range overrides {
		o(row)
	}
	return row
}

// Product builds a valid product row.
func Product(id string, overrides ...func(table.Row)) table.Row {
	row := table.Row{
		"product_id":      id,
		"category":        "Grocery",
		"subcategory":     "Snacks",
		"brand":           "Aster",
		"unit_price":      "4.50",
		"unit_cost":       "2.10",
		"is_discountable": "1",
	}
	for _, o := range overrides {
		o(row)
	}
	return row
}

// Transaction builds a valid transaction row referencing the given keys.
func Transaction(id, customerID, storeID, productID string, overrides ...func(table.Row)) table.Row {
	row := table.Row{
		"transaction_id":   id,
		"customer_id":      customerID,
		"store_id":         storeID,
		"product_id":       productID,
		"transaction_date": "2025-03-12",
		"channel":          "InStore",
		"quantity":         "2",
		"discount_pct":     "0.1",
	}
	for _, o := range overrides {
		o(row)
	}
	return row
}

// Set returns an override that assigns one field.
func Set(col, value string) func(table.Row) {
	return func(r table.Row) { r[col] = value }
}

// Del returns an override that removes one field entirely.
func Del(col string) func(table.Row) {
	return func(r table.Row) { delete(r, col) }
}

// IDs formats sequential ids like C00001 for quick fixtures.
func IDs(prefix string, width, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%0*d", prefix, width, i+1)
	}
	return out
}
