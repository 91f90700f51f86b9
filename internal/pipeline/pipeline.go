// Package pipeline orchestrates batch submission: validate against the
// current Reference Store snapshot, append accepted rows, audit
// rejections, and keep the derived tier column and merged view current.
//
// The pipeline is single-threaded by contract: callers must not interleave
// two submissions against the same store. Each call sees a consistent
// snapshot because the previous call's accepted rows were appended before
// it began.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline/retaildq/internal/loyalty"
	"github.com/fieldline/retaildq/internal/rules"
	"github.com/fieldline/retaildq/internal/store"
	"github.com/fieldline/retaildq/internal/table"
	"github.com/fieldline/retaildq/internal/view"
)

// Entity names the four batch types the pipeline accepts.
type Entity string

const (
	EntityCustomers    Entity = "customers"
	EntityStores       Entity = "stores"
	EntityProducts     Entity = "products"
	EntityTransactions Entity = "transactions"
)

// ParseEntity maps user input to an Entity.
func ParseEntity(s string) (Entity, error) {
	switch Entity(s) {
	case EntityCustomers, EntityStores, EntityProducts, EntityTransactions:
		return Entity(s), nil
	}
	return "", fmt.Errorf("unknown entity %q: must be one of customers, stores, products, transactions", s)
}

// Outcome summarizes one submitted batch.
type Outcome struct {
	BatchID  string
	Entity   Entity
	Received int
	Accepted int
	Rejected int

	// Rejections carries the per-row reasons for reporting.
	// They are already persisted to the audit table.
	Rejections []rules.Rejection
}

// Pipeline wires the rule engine, loyalty engine and view rebuilder to a
// Reference Store.
type Pipeline struct {
	store  *store.Store
	clock  rules.Clock
	logger *slog.Logger

	// retierOnIngest triggers tier recomputation and a view rebuild after
	// every submitted transaction batch.
	retierOnIngest bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(c rules.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithoutRetier disables the automatic tier recomputation and view rebuild
// after transaction batches.
func WithoutRetier() Option {
	return func(p *Pipeline) { p.retierOnIngest = false }
}

// New creates a Pipeline over an open store.
func New(st *store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:          st,
		clock:          rules.SystemClock{},
		logger:         slog.Default(),
		retierOnIngest: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Validate runs a dry-run validation of a candidate batch against the
// current store contents. Nothing is persisted.
func (p *Pipeline) Validate(ctx context.Context, entity Entity, batch *table.Table) (*rules.Result, error) {
	rs, err := p.ruleSet(ctx, entity)
	if err != nil {
		return nil, err
	}
	return rs.Validate(batch), nil
}

// Submit validates a candidate batch, appends the accepted rows, audits
// the rejected ones with a rejected_at stamp, and records the batch.
// For transaction batches it then recomputes loyalty tiers and rebuilds
// the merged view, unless disabled.
func (p *Pipeline) Submit(ctx context.Context, entity Entity, batch *table.Table) (*Outcome, error) {
	rs, err := p.ruleSet(ctx, entity)
	if err != nil {
		return nil, err
	}

	res := rs.Validate(batch)
	now := time.Now()

	if err := p.store.Append(ctx, string(entity), res.Accepted.Rows); err != nil {
		return nil, fmt.Errorf("failed to append accepted %s: %w", entity, err)
	}
	if err := p.store.AppendRejections(ctx, string(entity), res.Rejected, now); err != nil {
		return nil, fmt.Errorf("failed to append rejected %s: %w", entity, err)
	}

	outcome := &Outcome{
		BatchID:    uuid.NewString(),
		Entity:     entity,
		Received:   batch.Len(),
		Accepted:   res.Accepted.Len(),
		Rejected:   len(res.Rejected),
		Rejections: res.Rejected,
	}
	if err := p.store.RecordBatch(ctx, store.BatchAudit{
		BatchID:    outcome.BatchID,
		Entity:     string(entity),
		Received:   outcome.Received,
		Accepted:   outcome.Accepted,
		Rejected:   outcome.Rejected,
		ReceivedAt: now,
	}); err != nil {
		return nil, err
	}

	p.logger.Info("batch processed",
		"batch_id", outcome.BatchID,
		"entity", entity,
		"received", outcome.Received,
		"accepted", outcome.Accepted,
		"rejected", outcome.Rejected,
	)

	if entity == EntityTransactions && p.retierOnIngest {
		if err := p.Retier(ctx); err != nil {
			return nil, err
		}
		if err := p.RebuildView(ctx); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

// Retier recomputes loyalty tiers for the whole customer population and
// persists the new assignments.
func (p *Pipeline) Retier(ctx context.Context) error {
	customers, err := p.store.LoadTable(ctx, store.TableCustomers)
	if err != nil {
		return err
	}
	transactions, err := p.store.LoadTable(ctx, store.TableTransactions)
	if err != nil {
		return err
	}
	products, err := p.store.LoadTable(ctx, store.TableProducts)
	if err != nil {
		return err
	}

	updated := loyalty.RecomputeTiers(customers, transactions, products)
	if err := p.store.UpdateLoyaltyTiers(ctx, updated); err != nil {
		return err
	}

	p.logger.Info("loyalty tiers recomputed", "customers", updated.Len())
	return nil
}

// RebuildView regenerates the merged-transactions view from the four
// accepted tables.
func (p *Pipeline) RebuildView(ctx context.Context) error {
	customers, err := p.store.LoadTable(ctx, store.TableCustomers)
	if err != nil {
		return err
	}
	stores, err := p.store.LoadTable(ctx, store.TableStores)
	if err != nil {
		return err
	}
	products, err := p.store.LoadTable(ctx, store.TableProducts)
	if err != nil {
		return err
	}
	transactions, err := p.store.LoadTable(ctx, store.TableTransactions)
	if err != nil {
		return err
	}

	merged := view.RebuildMerged(customers, stores, products, transactions)
	if err := p.store.ReplaceMergedView(ctx, merged); err != nil {
		return err
	}

	p.logger.Info("merged view rebuilt", "rows", merged.Len())
	return nil
}

// ruleSet loads the reference tables an entity's rules need and builds the
// rule set over that snapshot.
func (p *Pipeline) ruleSet(ctx context.Context, entity Entity) (*rules.RuleSet, error) {
	switch entity {
	case EntityCustomers:
		existing, err := p.store.LoadTable(ctx, store.TableCustomers)
		if err != nil {
			return nil, err
		}
		return rules.ForCustomers(existing, p.clock), nil

	case EntityStores:
		existing, err := p.store.LoadTable(ctx, store.TableStores)
		if err != nil {
			return nil, err
		}
		return rules.ForStores(existing, p.clock), nil

	case EntityProducts:
		existing, err := p.store.LoadTable(ctx, store.TableProducts)
		if err != nil {
			return nil, err
		}
		return rules.ForProducts(existing), nil

	case EntityTransactions:
		existing, err := p.store.LoadTable(ctx, store.TableTransactions)
		if err != nil {
			return nil, err
		}
		customers, err := p.store.LoadTable(ctx, store.TableCustomers)
		if err != nil {
			return nil, err
		}
		stores, err := p.store.LoadTable(ctx, store.TableStores)
		if err != nil {
			return nil, err
		}
		products, err := p.store.LoadTable(ctx, store.TableProducts)
		if err != nil {
			return nil, err
		}
		return rules.ForTransactions(existing, customers, stores, products), nil
	}
	return nil, fmt.Errorf("unknown entity %q", entity)
}
