package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/retaildq/internal/rules"
	"github.com/fieldline/retaildq/internal/seed"
	"github.com/fieldline/retaildq/internal/table"
	"github.com/fieldline/retaildq/internal/testutil"
)

func smallConfig() seed.Config {
	cfg := seed.DefaultConfig()
	cfg.Customers = 40
	cfg.Stores = 8
	cfg.Products = 30
	cfg.Transactions = 500
	return cfg
}

func TestGenerate_Deterministic(t *testing.T) {
	a := seed.Generate(smallConfig())
	b := seed.Generate(smallConfig())

	require.Equal(t, a.Transactions.Len(), b.Transactions.Len())
	for i := range a.Transactions.Rows {
		assert.Equal(t, a.Transactions.Rows[i], b.Transactions.Rows[i])
	}
	assert.Equal(t, a.Customers.Rows, b.Customers.Rows)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	cfg := smallConfig()
	a := seed.Generate(cfg)
	cfg.Seed = 43
	b := seed.Generate(cfg)

	same := true
	for i := range a.Transactions.Rows {
		if !assert.ObjectsAreEqual(a.Transactions.Rows[i], b.Transactions.Rows[i]) {
			same = false
			break
		}
	}
	assert.False(t, same, "different seeds should produce different data")
}

func TestGenerate_Sizes(t *testing.T) {
	cfg := smallConfig()
	ds := seed.Generate(cfg)

	assert.Equal(t, cfg.Customers, ds.Customers.Len())
	assert.Equal(t, cfg.Stores, ds.Stores.Len())
	assert.Equal(t, cfg.Products, ds.Products.Len())
	assert.Equal(t, cfg.Transactions, ds.Transactions.Len())
}

// Every generated batch must pass its own validation rules, so that the
// seed command accepts everything it just generated.
func TestGenerate_AllRowsPassValidation(t *testing.T) {
	ds := seed.Generate(smallConfig())
	clock := testutil.FixedAt("2025-12-31")

	res := rules.ForCustomers(table.New(rules.CustomerColumns...), clock).Validate(ds.Customers)
	assert.Empty(t, res.Rejected, "customers: %v", firstReasons(res))

	res = rules.ForStores(table.New(rules.StoreColumns...), clock).Validate(ds.Stores)
	assert.Empty(t, res.Rejected, "stores: %v", firstReasons(res))

	res = rules.ForProducts(table.New(rules.ProductColumns...)).Validate(ds.Products)
	assert.Empty(t, res.Rejected, "products: %v", firstReasons(res))

	res = rules.ForTransactions(
		table.New(rules.TransactionColumns...),
		ds.Customers, ds.Stores, ds.Products,
	).Validate(ds.Transactions)
	assert.Empty(t, res.Rejected, "transactions: %v", firstReasons(res))
}

func firstReasons(res *rules.Result) []string {
	reasons := make([]string, 0, 3)
	for _, rej := range res.Rejected {
		reasons = append(reasons, rej.Reason)
		if len(reasons) == 3 {
			break
		}
	}
	return reasons
}
