// Package seed generates deterministic synthetic retail data for demos
// and load testing. Same seed, same dataset.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fieldline/retaildq/internal/rules"
	"github.com/fieldline/retaildq/internal/table"
)

// Config sizes the generated dataset.
type Config struct {
	Customers    int
	Stores       int
	Products     int
	Transactions int
	Seed         int64

	// Start and End bound the transaction date range.
	// Join and opening dates fall before Start.
	Start time.Time
	End   time.Time
}

// DefaultConfig mirrors the canonical synthetic dataset: 250 customers,
// 50 stores, 250 products, 50k transactions over five months.
func DefaultConfig() Config {
	return Config{
		Customers:    250,
		Stores:       50,
		Products:     250,
		Transactions: 50000,
		Seed:         42,
		Start:        time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Dataset holds the four generated candidate batches. All rows conform to
// the validation rules, so submitting them in table order (customers,
// stores, products, transactions) accepts everything.
type Dataset struct {
	Customers    *table.Table
	Stores       *table.Table
	Products     *table.Table
	Transactions *table.Table
}

var citiesByRegion = map[string][]string{
	"North":   {"Northville", "Winterton", "Frostford"},
	"South":   {"Southport", "Sunvale", "Baytown"},
	"East":    {"Easton", "Rivermouth", "Lakeview"},
	"West":    {"Westhaven", "Hillcrest", "Oakridge"},
	"Central": {"Centrum", "Midtown", "Grandview"},
}

var subcategories = map[string][]string{
	"Grocery":     {"Snacks", "Beverages", "Pantry", "Fresh"},
	"Electronics": {"Accessories", "Audio", "Computing", "Mobile"},
	"Clothing":    {"Men", "Women", "Kids", "Footwear"},
	"Home":        {"Kitchen", "Decor", "Cleaning", "Furniture"},
	"Beauty":      {"Skincare", "Makeup", "Haircare", "Fragrance"},
	"Sports":      {"Fitness", "Outdoor", "TeamSports", "Shoes"},
}

var brands = []string{"Aster", "Nova", "Pine", "Orchid", "Kite", "Nimbus", "Zenith", "Atlas"}

// priceRange bounds unit prices per category, low to high.
var priceRange = map[string][2]float64{
	"Grocery":     {1.5, 15},
	"Beauty":      {5, 60},
	"Clothing":    {8, 120},
	"Home":        {4, 250},
	"Sports":      {10, 180},
	"Electronics": {15, 900},
}

// Generate produces the full dataset from the config's seed.
func Generate(cfg Config) *Dataset {
	r := rand.New(rand.NewSource(cfg.Seed))
	g := &generator{r: r, cfg: cfg}

	ds := &Dataset{
		Customers: g.customers(),
		Stores:    g.stores(),
		Products:  g.products(),
	}
	ds.Transactions = g.transactions(ds)
	return ds
}

type generator struct {
	r   *rand.Rand
	cfg Config
}

func (g *generator) customers() *table.Table {
	out := table.New(rules.CustomerColumns...)
	for i := 1; i <= g.cfg.Customers; i++ {
		region := g.weighted(rules.Regions, []float64{0.22, 0.20, 0.20, 0.18, 0.20})
		tier := g.weighted(rules.LoyaltyTiers, []float64{0.45, 0.30, 0.18, 0.07})
		joined := g.cfg.Start.AddDate(0, 0, -(30 + g.r.Intn(700)))

		out.Append(table.Row{
			"customer_id":       fmt.Sprintf("C%05d", i),
			"gender":            g.weighted(rules.Genders, []float64{0.49, 0.49, 0.02}),
			"age":               fmt.Sprintf("%d", 18+g.r.Intn(58)),
			"join_date":         table.FormatDate(joined),
			"loyalty_tier":      tier,
			"region":            region,
			"city":              g.pick(citiesByRegion[region]),
			"preferred_channel": g.weighted(rules.Channels, []float64{0.55, 0.30, 0.15}),
		})
	}
	return out
}

func (g *generator) stores() *table.Table {
	out := table.New(rules.StoreColumns...)
	for i := 1; i <= g.cfg.Stores; i++ {
		region := g.weighted(rules.Regions, []float64{0.22, 0.20, 0.20, 0.18, 0.20})
		opened := g.cfg.Start.AddDate(0, 0, -(180 + g.r.Intn(3470)))

		out.Append(table.Row{
			"store_id":     fmt.Sprintf("S%03d", i),
			"store_type":   g.weighted(rules.StoreTypes, []float64{0.38, 0.32, 0.20, 0.10}),
			"region":       region,
			"city":         g.pick(citiesByRegion[region]),
			"opening_date": table.FormatDate(opened),
		})
	}
	return out
}

func (g *generator) products() *table.Table {
	out := table.New(rules.ProductColumns...)
	for i := 1; i <= g.cfg.Products; i++ {
		category := g.weighted(rules.Categories, []float64{0.30, 0.12, 0.20, 0.16, 0.12, 0.10})
		bounds := priceRange[category]
		price := bounds[0] + g.r.Float64()*(bounds[1]-bounds[0])
		cost := price * (0.45 + g.r.Float64()*0.30)

		discountable := "1"
		if g.r.Float64() < 0.25 {
			discountable = "0"
		}

		out.Append(table.Row{
			"product_id":      fmt.Sprintf("P%04d", i),
			"category":        category,
			"subcategory":     g.pick(subcategories[category]),
			"brand":           g.pick(brands),
			"unit_price":      fmt.Sprintf("%.2f", price),
			"unit_cost":       fmt.Sprintf("%.2f", cost),
			"is_discountable": discountable,
		})
	}
	return out
}

func (g *generator) transactions(ds *Dataset) *table.Table {
	days := int(g.cfg.End.Sub(g.cfg.Start).Hours()/24) + 1
	storeOpenings := make([]time.Time, ds.Stores.Len())
	for i, s := range ds.Stores.Rows {
		opened, _ := table.Date(s.Get("opening_date"))
		storeOpenings[i] = opened
	}

	discountSteps := []string{"0.05", "0.1", "0.15", "0.2", "0.25", "0.3"}
	discountWeights := []float64{0.25, 0.28, 0.18, 0.15, 0.09, 0.05}

	out := table.New(rules.TransactionRequired...)
	for i := 1; i <= g.cfg.Transactions; i++ {
		customer := ds.Customers.Rows[g.r.Intn(ds.Customers.Len())]
		storeIdx := g.r.Intn(ds.Stores.Len())
		storeRow := ds.Stores.Rows[storeIdx]
		product := ds.Products.Rows[g.r.Intn(ds.Products.Len())]

		// Generated stores all open before Start, so any date in range
		// satisfies the opening-date rule.
		date := g.cfg.Start.AddDate(0, 0, g.r.Intn(days))

		channel := customer.Get("preferred_channel")
		if storeRow.Get("store_type") == "OnlineHub" {
			channel = g.weighted([]string{"Online", "Mobile"}, []float64{0.65, 0.35})
		} else if g.r.Float64() > 0.6 {
			channel = g.weighted(rules.Channels, []float64{0.62, 0.25, 0.13})
		}

		qty := 1 + g.r.Intn(3)
		if product.Get("category") == "Grocery" {
			qty = 1 + g.r.Intn(5)
		}

		discount := "0"
		if product.Get("is_discountable") == "1" && g.r.Float64() < 0.22 {
			discount = g.weighted(discountSteps, discountWeights)
		}

		out.Append(table.Row{
			"transaction_id":   fmt.Sprintf("T%07d", i),
			"customer_id":      customer.Get("customer_id"),
			"store_id":         storeRow.Get("store_id"),
			"product_id":       product.Get("product_id"),
			"transaction_date": table.FormatDate(date),
			"channel":          channel,
			"quantity":         fmt.Sprintf("%d", qty),
			"discount_pct":     discount,
		})
	}
	return out
}

// pick returns a uniformly random element.
func (g *generator) pick(options []string) string {
	return options[g.r.Intn(len(options))]
}

// weighted returns an element drawn by weight. Weights need not sum to 1.
func (g *generator) weighted(options []string, weights []float64) string {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := g.r.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return options[i]
		}
	}
	return options[len(options)-1]
}
