package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fieldline/retaildq/internal/table"
)

// LoadTable reads the full contents of a table in insertion order.
// Rowid order is submission order, which downstream consumers rely on for
// deterministic tie-breaks.
func (s *Store) LoadTable(ctx context.Context, name string) (*table.Table, error) {
	cols, err := Columns(name)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY rowid`,
		strings.Join(cols, ", "), name,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	defer rows.Close()

	out := table.New(cols...)
	scan := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range scan {
		ptrs[i] = &scan[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", name, err)
		}
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[c] = scan[i].String
		}
		out.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return out, nil
}

// Count returns the number of rows in a table.
func (s *Store) Count(ctx context.Context, name string) (int, error) {
	if _, err := Columns(name); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+name).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", name, err)
	}
	return n, nil
}

// Query runs an ad-hoc read-only statement for the query console.
// Anything other than a single SELECT (or WITH ... SELECT) is refused;
// the append-only write surface stays with the typed methods.
func (s *Store) Query(ctx context.Context, query string) (*table.Table, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return nil, fmt.Errorf("only SELECT queries are allowed")
	}
	if strings.Contains(trimmed, ";") {
		return nil, fmt.Errorf("only a single statement is allowed")
	}

	rows, err := s.db.QueryContext(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	out := table.New(cols...)
	for rows.Next() {
		scan := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range scan {
			ptrs[i] = &scan[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[c] = scan[i].String
		}
		out.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result: %w", err)
	}

	return out, nil
}
