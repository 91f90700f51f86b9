// Package loyalty implements the full-population loyalty-tier
// recomputation.
//
// Tiers are derived, never incrementally updated: every run discards prior
// values and reassigns the whole customer population from scratch. The only
// accepted non-determinism is tie order for exactly-equal spend, which is
// pinned to customer-table insertion order via a stable sort.
package loyalty

import (
	"sort"

	"github.com/fieldline/retaildq/internal/table"
)

// Tier labels in rank order, best first.
const (
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"
)

// RecomputeTiers reassigns loyalty_tier for every customer.
//
// Spend per transaction is quantity * unit_price * (1 - discount_pct); any
// missing or unparseable term contributes 0 rather than erroring. Spend is
// bucketed by (customer, calendar month), averaged across the months the
// customer actually transacted in, and customers are ranked by that average
// descending. The ranked population splits at integer floor cuts of 25%,
// 50% and 75% into Platinum/Gold/Silver/Bronze bands.
//
// The returned table carries the customers' original columns with rows in
// ranking order and loyalty_tier overwritten. Rerunning on unchanged inputs
// yields identical assignments.
func RecomputeTiers(customers, transactions, products *table.Table) *table.Table {
	avg := AverageMonthlySpend(transactions, products)

	type ranked struct {
		row   table.Row
		spend float64
	}
	population := make([]ranked, 0, customers.Len())
	for _, row := range customers.Rows {
		population = append(population, ranked{
			row:   row.Clone(),
			spend: avg[row.Get("customer_id")],
		})
	}

	// Stable keeps insertion order for equal spend.
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].spend > population[j].spend
	})

	n := len(population)
	q1, q2, q3 := n/4, n/2, 3*n/4

	out := table.New(customers.Columns...)
	for rank, c := range population {
		switch {
		case rank < q1:
			c.row["loyalty_tier"] = TierPlatinum
		case rank < q2:
			c.row["loyalty_tier"] = TierGold
		case rank < q3:
			c.row["loyalty_tier"] = TierSilver
		default:
			c.row["loyalty_tier"] = TierBronze
		}
		out.Append(c.row)
	}
	return out
}

// AverageMonthlySpend computes each customer's mean monthly spend across
// the months they transacted in. Customers absent from the result spent
// nothing; callers treat a missing key as 0.
func AverageMonthlySpend(transactions, products *table.Table) map[string]float64 {
	prices := make(map[string]float64, products.Len())
	for _, p := range products.Rows {
		if v, ok := table.Number(p.Get("unit_price")); ok {
			prices[p.Get("product_id")] = v
		}
	}

	// customer -> month -> summed spend
	monthly := make(map[string]map[string]float64)
	for _, tx := range transactions.Rows {
		qty, _ := table.Number(tx.Get("quantity"))
		disc, _ := table.Number(tx.Get("discount_pct"))
		price := prices[tx.Get("product_id")]
		spend := qty * price * (1 - disc)

		month := ""
		if d, ok := table.Date(tx.Get("transaction_date")); ok {
			month = table.MonthKey(d)
		}

		cid := tx.Get("customer_id")
		if monthly[cid] == nil {
			monthly[cid] = make(map[string]float64)
		}
		monthly[cid][month] += spend
	}

	avg := make(map[string]float64, len(monthly))
	for cid, months := range monthly {
		var total float64
		for _, v := range months {
			total += v
		}
		avg[cid] = total / float64(len(months))
	}
	return avg
}
