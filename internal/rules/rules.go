// Package rules implements the data-quality rule engine.
//
// Each entity type (customer, store, product, transaction) gets a RuleSet:
// an ordered list of independent predicates evaluated over a whole candidate
// batch. Every predicate runs against every row - there is no short-circuit -
// so one bad row can accumulate several reasons. A row is rejected iff at
// least one predicate flags it; its reason text is the concatenation of all
// violated messages in declaration order.
//
// Rule sets are pure: the only ambient input is the Clock used for
// date-in-the-future checks. Reference tables are captured at construction
// time, so validation never touches storage.
package rules

import (
	"strings"

	"github.com/fieldline/retaildq/internal/table"
)

// reasonSep joins violated predicate messages. The trailing separator of the
// final message survives with only whitespace trimmed, so a full reason reads
// "Invalid gender; Invalid region;".
const reasonSep = "; "

// Predicate is a named boolean check over a candidate batch.
// Mask returns one entry per row; true means the row violates the rule.
type Predicate struct {
	Message string
	Mask    func(batch []table.Row) []bool
}

// Rejection pairs an original candidate row with its accumulated reason.
type Rejection struct {
	Row    table.Row
	Reason string
}

// Result is the partition produced by one validation call.
// len(Accepted.Rows) + len(Rejected) always equals the candidate count.
type Result struct {
	Accepted *table.Table
	Rejected []Rejection
}

// RuleSet is an ordered predicate list for one entity type.
// Predicate order NEVER changes after construction - reason concatenation
// order is part of the contract.
type RuleSet struct {
	Entity     string
	Columns    []string
	Predicates []Predicate

	// normalize rewrites an accepted row into canonical form
	// (dates as YYYY-MM-DD, numbers in shortest form, derived columns).
	normalize func(table.Row) table.Row
}

// Validate partitions a candidate batch into accepted and rejected rows.
//
// Accepted rows are normalized copies; rejected rows keep their original
// field values plus the concatenated reason. The input batch is not mutated.
func (rs *RuleSet) Validate(batch *table.Table) *Result {
	n := batch.Len()
	reject := make([]bool, n)
	reasons := make([]strings.Builder, n)

	for _, p := range rs.Predicates {
		mask := p.Mask(batch.Rows)
		for i := 0; i < n && i < len(mask); i++ {
			if mask[i] {
				reject[i] = true
				reasons[i].WriteString(p.Message)
				reasons[i].WriteString(reasonSep)
			}
		}
	}

	res := &Result{Accepted: table.New(rs.Columns...)}
	for i, row := range batch.Rows {
		if reject[i] {
			res.Rejected = append(res.Rejected, Rejection{
				Row:    row.Clone(),
				Reason: strings.TrimSpace(reasons[i].String()),
			})
			continue
		}
		accepted := row.Clone()
		if rs.normalize != nil {
			accepted = rs.normalize(accepted)
		}
		res.Accepted.Append(accepted)
	}
	return res
}
