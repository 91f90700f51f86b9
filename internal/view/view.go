// Package view rebuilds the denormalized merged-transactions view.
package view

import "github.com/fieldline/retaildq/internal/table"

// MergedColumns is the fixed output column order: product attributes,
// then store, then customer, then the transaction itself.
var MergedColumns = []string{
	"product_id", "category", "unit_price", "is_discountable",
	"store_id", "store_type", "region", "city",
	"customer_id", "gender", "age", "loyalty_tier", "preferred_channel",
	"transaction_id", "transaction_date", "channel",
	"quantity", "discount_pct",
}

// RebuildMerged joins every accepted transaction to its product, store and
// customer attributes. Joins are left joins: a transaction whose reference
// rows are missing still appears, with the unresolved columns blank.
// The validation layer makes dangling references impossible for rows it
// accepted, but the view never assumes that.
func RebuildMerged(customers, stores, products, transactions *table.Table) *table.Table {
	prodByID := products.Index("product_id")
	storeByID := stores.Index("store_id")
	custByID := customers.Index("customer_id")

	out := table.New(MergedColumns...)
	for _, tx := range transactions.Rows {
		row := make(table.Row, len(MergedColumns))

		product := prodByID[tx.Get("product_id")]
		row["product_id"] = tx.Get("product_id")
		row["category"] = product.Get("category")
		row["unit_price"] = product.Get("unit_price")
		row["is_discountable"] = product.Get("is_discountable")

		store := storeByID[tx.Get("store_id")]
		row["store_id"] = tx.Get("store_id")
		row["store_type"] = store.Get("store_type")
		row["region"] = store.Get("region")
		row["city"] = store.Get("city")

		customer := custByID[tx.Get("customer_id")]
		row["customer_id"] = tx.Get("customer_id")
		row["gender"] = customer.Get("gender")
		row["age"] = customer.Get("age")
		row["loyalty_tier"] = customer.Get("loyalty_tier")
		row["preferred_channel"] = customer.Get("preferred_channel")

		row["transaction_id"] = tx.Get("transaction_id")
		row["transaction_date"] = tx.Get("transaction_date")
		row["channel"] = tx.Get("channel")
		row["quantity"] = tx.Get("quantity")
		row["discount_pct"] = tx.Get("discount_pct")

		out.Append(row)
	}
	return out
}
