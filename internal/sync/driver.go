package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/healthsync/healthsync/internal/source"
)

// Driver enumerates every table in the source store and runs the
// Synchronizer on each one in order. A failure in one table, including an
// unanticipated panic, never stops the run.
type Driver struct {
	syncer *Synchronizer
	src    source.Reader
	logger *slog.Logger
}

// NewDriver creates a Driver.
func NewDriver(syncer *Synchronizer, src source.Reader, logger *slog.Logger) *Driver {
	return &Driver{syncer: syncer, src: src, logger: logger}
}

// Run synchronizes all source tables sequentially and returns one Outcome
// per table, filtered tables included. The returned error is non-nil only
// when the source catalog itself cannot be listed.
func (d *Driver) Run(ctx context.Context) ([]Outcome, error) {
	tables, err := d.src.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing source tables: %w", err)
	}

	outcomes := make([]Outcome, 0, len(tables))
	for _, table := range tables {
		outcomes = append(outcomes, d.syncOne(ctx, table))
	}
	return outcomes, nil
}

func (d *Driver) syncOne(ctx context.Context, table string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("unhandled error syncing table", "table", table, "panic", r)
			out = Outcome{Table: table, Err: fmt.Errorf("unhandled error: %v", r)}
		}
	}()
	return d.syncer.SyncTable(ctx, table)
}

// Totals aggregates a run's outcomes for the end-of-run report.
type Totals struct {
	Tables           int
	Synced           int
	Filtered         int
	Errored          int
	Inserted         int
	AlreadyPresent   int
	SkippedMalformed int
}

// Summarize computes run totals from per-table outcomes.
func Summarize(outcomes []Outcome) Totals {
	t := Totals{Tables: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Filtered:
			t.Filtered++
		case o.Err != nil:
			t.Errored++
		default:
			t.Synced++
		}
		t.Inserted += o.Inserted
		t.AlreadyPresent += o.AlreadyPresent
		t.SkippedMalformed += o.SkippedMalformed
	}
	return t
}
