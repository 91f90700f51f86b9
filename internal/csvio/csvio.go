// Package csvio reads candidate batches from CSV and writes tables back
// out. The header row is the column order; every cell is carried as a raw
// string for the rule engine to coerce.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fieldline/retaildq/internal/table"
)

// ReadFile loads a CSV file as a table.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV from a reader. The first record is the header.
// Short records leave trailing columns absent; extra cells are an error,
// surfaced before anything reaches the rule engine.
func Read(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	out := table.New(header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("record has %d fields, header has %d", len(record), len(header))
		}
		row := make(table.Row, len(header))
		for i, cell := range record {
			row[header[i]] = cell
		}
		out.Append(row)
	}
	return out, nil
}

// WriteFile writes a table as CSV to a file, creating or truncating it.
func WriteFile(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Write serializes a table as CSV: header first, rows in order.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			record[i] = row.Get(c)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
