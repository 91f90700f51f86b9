package rules

import (
	"github.com/fieldline/retaildq/internal/table"
)

// requiredPredicate flags rows with any required column absent or blank.
func requiredPredicate(cols []string) Predicate {
	return Predicate{
		Message: "Missing required field(s)",
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			for i, row := range batch {
				for _, c := range cols {
					if table.Missing(row, c) {
						mask[i] = true
						break
					}
				}
			}
			return mask
		},
	}
}

// uniquePredicate flags rows whose key already exists in the reference
// table, or duplicates an earlier row of the same batch. First occurrence
// in submission order wins the within-batch check, even if that first row
// is itself rejected for other reasons.
func uniquePredicate(col, message string, existing map[string]struct{}) Predicate {
	return Predicate{
		Message: message,
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			seen := make(map[string]struct{}, len(batch))
			for i, row := range batch {
				key := row.Get(col)
				if _, ok := existing[key]; ok {
					mask[i] = true
				}
				if _, dup := seen[key]; dup {
					mask[i] = true
				}
				seen[key] = struct{}{}
			}
			return mask
		},
	}
}

// enumPredicate flags rows whose value is outside the allowed domain.
// A missing value is outside every domain.
func enumPredicate(col, message string, allowed ...string) Predicate {
	domain := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		domain[v] = struct{}{}
	}
	return Predicate{
		Message: message,
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			for i, row := range batch {
				if _, ok := domain[row.Get(col)]; !ok {
					mask[i] = true
				}
			}
			return mask
		},
	}
}

// numericRangePredicate flags rows whose value fails numeric coercion or
// falls outside [min, max]. Both bounds are inclusive.
func numericRangePredicate(col, message string, min, max float64) Predicate {
	return Predicate{
		Message: message,
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			for i, row := range batch {
				v, ok := table.Number(row.Get(col))
				if !ok || v < min || v > max {
					mask[i] = true
				}
			}
			return mask
		},
	}
}

// pastDatePredicate flags rows whose date fails to parse or lies after
// today. Today itself is acceptable.
func pastDatePredicate(col, message string, clock Clock) Predicate {
	return Predicate{
		Message: message,
		Mask: func(batch []table.Row) []bool {
			today := clock.Today()
			mask := make([]bool, len(batch))
			for i, row := range batch {
				d, ok := table.Date(row.Get(col))
				if !ok || d.After(today) {
					mask[i] = true
				}
			}
			return mask
		},
	}
}

// existsPredicate flags rows whose foreign key does not resolve in the
// referenced table. Only previously committed rows count - a key introduced
// by the same uncommitted batch does not satisfy the check.
func existsPredicate(col, message string, refs map[string]struct{}) Predicate {
	return Predicate{
		Message: message,
		Mask: func(batch []table.Row) []bool {
			mask := make([]bool, len(batch))
			for i, row := range batch {
				if _, ok := refs[row.Get(col)]; !ok {
					mask[i] = true
				}
			}
			return mask
		},
	}
}

// normalizeDate rewrites a parseable date column into canonical form,
// leaving unparseable values untouched.
func normalizeDate(row table.Row, col string) {
	if d, ok := table.Date(row.Get(col)); ok {
		row[col] = table.FormatDate(d)
	}
}

// normalizeNumber rewrites a parseable numeric column into shortest form.
func normalizeNumber(row table.Row, col string) {
	if v, ok := table.Number(row.Get(col)); ok {
		row[col] = table.FormatNumber(v)
	}
}
