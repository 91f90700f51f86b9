package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/fieldline/retaildq/internal/pipeline"
	"github.com/fieldline/retaildq/internal/store"
	"github.com/fieldline/retaildq/internal/table"
	"github.com/fieldline/retaildq/internal/testutil"
)

// Snapshot captures the observable outcome of one scenario run.
// Field order is fixed so the JSON serialization is byte-stable for
// golden comparison. Batch ids are excluded: they are random by design.
type Snapshot struct {
	Scenario string          `json:"scenario"`
	Batches  []BatchSnapshot `json:"batches"`
	Tiers    []TierSnapshot  `json:"tiers,omitempty"`
}

// BatchSnapshot is the recorded partition of one submitted batch.
type BatchSnapshot struct {
	Entity   string   `json:"entity"`
	Received int      `json:"received"`
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`

	// Reasons lists "key: reason" lines in submission order.
	Reasons []string `json:"reasons,omitempty"`
}

// TierSnapshot is one customer's final tier, in customer-table order.
type TierSnapshot struct {
	CustomerID string `json:"customer_id"`
	Tier       string `json:"tier"`
}

// Run executes a scenario against a fresh store in a temp directory,
// checks its inline expectations, and returns the outcome snapshot.
func Run(t *testing.T, s *Scenario) *Snapshot {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "scenario.db"))
	if err != nil {
		t.Fatalf("failed to open scenario store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	opts := []pipeline.Option{
		pipeline.WithClock(testutil.FixedAt(s.Today)),
		pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	if s.RetierOnIngest != nil && !*s.RetierOnIngest {
		opts = append(opts, pipeline.WithoutRetier())
	}
	p := pipeline.New(st, opts...)

	snap := &Snapshot{Scenario: s.Name}
	ctx := context.Background()

	for i, step := range s.Batches {
		entity, err := pipeline.ParseEntity(step.Entity)
		if err != nil {
			t.Fatalf("batch %d: %v", i, err)
		}

		outcome, err := p.Submit(ctx, entity, step.batch())
		if err != nil {
			t.Fatalf("batch %d (%s): submit failed: %v", i, entity, err)
		}

		bs := BatchSnapshot{
			Entity:   string(entity),
			Received: outcome.Received,
			Accepted: outcome.Accepted,
			Rejected: outcome.Rejected,
		}
		keyCol := step.Columns[0]
		for _, rej := range outcome.Rejections {
			bs.Reasons = append(bs.Reasons, fmt.Sprintf("%s: %s", rej.Row.Get(keyCol), rej.Reason))
		}
		snap.Batches = append(snap.Batches, bs)

		if step.Expect != nil {
			if outcome.Accepted != step.Expect.Accepted {
				t.Errorf("batch %d (%s): accepted = %d, want %d", i, entity, outcome.Accepted, step.Expect.Accepted)
			}
			if outcome.Rejected != step.Expect.Rejected {
				t.Errorf("batch %d (%s): rejected = %d, want %d", i, entity, outcome.Rejected, step.Expect.Rejected)
			}
		}
	}

	customers, err := st.LoadTable(ctx, store.TableCustomers)
	if err != nil {
		t.Fatalf("failed to load final customers: %v", err)
	}
	for _, row := range customers.Rows {
		snap.Tiers = append(snap.Tiers, TierSnapshot{
			CustomerID: row.Get("customer_id"),
			Tier:       row.Get("loyalty_tier"),
		})
	}

	checkFinal(t, ctx, st, s, customers)
	return snap
}

// batch materializes the step's rows as a table.
func (b BatchStep) batch() *table.Table {
	t := table.New(b.Columns...)
	for _, values := range b.Rows {
		row := make(table.Row, len(b.Columns))
		for i, v := range values {
			if i >= len(b.Columns) {
				break
			}
			row[b.Columns[i]] = v
		}
		t.Append(row)
	}
	return t
}

// checkFinal verifies the scenario's final-state assertions.
func checkFinal(t *testing.T, ctx context.Context, st *store.Store, s *Scenario, customers *table.Table) {
	t.Helper()

	if len(s.Tiers) > 0 {
		byID := customers.Index("customer_id")
		for cid, want := range s.Tiers {
			row, ok := byID[cid]
			if !ok {
				t.Errorf("tier assertion: customer %s not found", cid)
				continue
			}
			if got := row.Get("loyalty_tier"); got != want {
				t.Errorf("tier of %s = %s, want %s", cid, got, want)
			}
		}
	}

	for name, want := range s.Counts {
		got, err := st.Count(ctx, name)
		if err != nil {
			t.Errorf("count assertion: %v", err)
			continue
		}
		if got != want {
			t.Errorf("count of %s = %d, want %d", name, got, want)
		}
	}
}
