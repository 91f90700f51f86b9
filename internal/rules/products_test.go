package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/retaildq/internal/rules"
	"github.com/fieldline/retaildq/internal/table"
	"github.com/fieldline/retaildq/internal/testutil"
)

func TestProducts_UnitPriceBoundaries(t *testing.T) {
	batch := table.New(rules.ProductColumns...)
	batch.Append(
		testutil.Product("P001", testutil.Set("unit_price", "5000")),
		testutil.Product("P002", testutil.Set("unit_price", "5000.01")),
		testutil.Product("P003", testutil.Set("unit_price", "0")),
		testutil.Product("P004", testutil.Set("unit_price", "0.01")),
		testutil.Product("P005", testutil.Set("unit_price", "free")),
	)

	res := rules.ForProducts(emptyTable("product_id")).Validate(batch)

	assert.Equal(t, 2, res.Accepted.Len(), "5000 is valid, zero is not")
	require.Len(t, res.Rejected, 3)
	for _, rej := range res.Rejected {
		assert.Contains(t, rej.Reason, "Invalid unit_price")
	}
}

func TestProducts_DiscountableCoercion(t *testing.T) {
	batch := table.New(rules.ProductColumns...)
	batch.Append(
		testutil.Product("P001", testutil.Set("is_discountable", "1.0")),
		testutil.Product("P002", testutil.Set("is_discountable", "2")),
		testutil.Product("P003", testutil.Set("is_discountable", "yes")),
	)

	res := rules.ForProducts(emptyTable("product_id")).Validate(batch)

	require.Equal(t, 1, res.Accepted.Len(), "1.0 coerces to 1")
	assert.Equal(t, "1", res.Accepted.Rows[0].Get("is_discountable"))
	require.Len(t, res.Rejected, 2)
	for _, rej := range res.Rejected {
		assert.Contains(t, rej.Reason, "Invalid is_discountable (must be 0/1)")
	}
}

func TestProducts_OptionalColumnsPassThrough(t *testing.T) {
	batch := table.New(rules.ProductRequired...)
	batch.Append(table.Row{
		"product_id":      "P001",
		"category":        "Home",
		"unit_price":      "25",
		"is_discountable": "0",
	})

	res := rules.ForProducts(emptyTable("product_id")).Validate(batch)

	require.Equal(t, 1, res.Accepted.Len())
	assert.True(t, res.Accepted.HasColumn("subcategory"))
	assert.Equal(t, "", res.Accepted.Rows[0].Get("brand"),
		"omitted optional columns stay blank")
}

func TestProducts_UniqueAndCategory(t *testing.T) {
	existing := table.New(rules.ProductColumns...)
	existing.Append(testutil.Product("P001"))

	batch := table.New(rules.ProductColumns...)
	batch.Append(
		testutil.Product("P001", testutil.Set("category", "Toys")),
	)

	res := rules.ForProducts(existing).Validate(batch)

	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "product_id not unique; Invalid category;", res.Rejected[0].Reason)
}
