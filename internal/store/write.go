package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldline/retaildq/internal/rules"
	"github.com/fieldline/retaildq/internal/table"
)

// Append adds accepted rows to the end of an entity table.
// Rows are written in slice order inside one transaction; values for
// declared columns the rows lack are stored blank.
func (s *Store) Append(ctx context.Context, name string, rows []table.Row) error {
	cols, err := Columns(name)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin append to %s: %w", name, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(name, cols))
	if err != nil {
		return fmt.Errorf("failed to prepare append to %s: %w", name, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]any, len(cols))
		for i, c := range cols {
			args[i] = row.Get(c)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to append row to %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit append to %s: %w", name, err)
	}
	return nil
}

// AppendRejections writes rejected candidates to the entity's audit table.
// Rows keep their original (un-normalized) values; the rejection reason and
// the caller's timestamp are appended per the audit contract. Write-only:
// nothing in the core ever reads these back.
func (s *Store) AppendRejections(ctx context.Context, entity string, rejections []rules.Rejection, rejectedAt time.Time) error {
	name := "rejected_" + entity
	if _, err := Columns(name); err != nil {
		return err
	}
	if len(rejections) == 0 {
		return nil
	}

	stamp := rejectedAt.Format(table.TimestampLayout)
	rows := make([]table.Row, 0, len(rejections))
	for _, rej := range rejections {
		row := rej.Row.Clone()
		row["rejection_reason"] = rej.Reason
		row["rejected_at"] = stamp
		rows = append(rows, row)
	}
	return s.Append(ctx, name, rows)
}

// UpdateLoyaltyTiers overwrites the loyalty_tier column from a recomputed
// customer table. This is the single permitted in-place mutation; customer
// rows keep their original insertion order and all other columns.
func (s *Store) UpdateLoyaltyTiers(ctx context.Context, customers *table.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tier update: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE customers SET loyalty_tier = ? WHERE customer_id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare tier update: %w", err)
	}
	defer stmt.Close()

	for _, row := range customers.Rows {
		if _, err := stmt.ExecContext(ctx, row.Get("loyalty_tier"), row.Get("customer_id")); err != nil {
			return fmt.Errorf("failed to update tier for %s: %w", row.Get("customer_id"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tier update: %w", err)
	}
	return nil
}

// ReplaceMergedView regenerates the denormalized view from scratch.
// The view is derived data, so full replacement is the contract.
func (s *Store) ReplaceMergedView(ctx context.Context, merged *table.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin view rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM merged_transactions`); err != nil {
		return fmt.Errorf("failed to clear merged view: %w", err)
	}

	cols, _ := Columns(TableMergedView)
	stmt, err := tx.PrepareContext(ctx, insertSQL(TableMergedView, cols))
	if err != nil {
		return fmt.Errorf("failed to prepare view insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range merged.Rows {
		args := make([]any, len(cols))
		for i, c := range cols {
			args[i] = row.Get(c)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert view row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit view rebuild: %w", err)
	}
	return nil
}

// BatchAudit is one row of the batch audit log.
type BatchAudit struct {
	BatchID    string
	Entity     string
	Received   int
	Accepted   int
	Rejected   int
	ReceivedAt time.Time
}

// RecordBatch appends a batch audit row.
func (s *Store) RecordBatch(ctx context.Context, audit BatchAudit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batches (batch_id, entity, received, accepted, rejected, received_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		audit.BatchID, audit.Entity, audit.Received, audit.Accepted, audit.Rejected,
		audit.ReceivedAt.Format(table.TimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record batch %s: %w", audit.BatchID, err)
	}
	return nil
}

// insertSQL builds a parameterized INSERT for a whitelisted table.
func insertSQL(name string, cols []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		name, strings.Join(cols, ", "), placeholders,
	)
}
