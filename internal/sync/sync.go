// Package sync implements the per-table synchronization algorithm: schema
// mapping, existence-check deduplication, row validation, and insertion, with
// faults isolated at the table boundary.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/healthsync/healthsync/internal/schema"
	"github.com/healthsync/healthsync/internal/selection"
	"github.com/healthsync/healthsync/internal/source"
	"github.com/healthsync/healthsync/internal/target"
	"github.com/healthsync/healthsync/internal/typemap"
)

// Outcome reports the result of synchronizing one table.
type Outcome struct {
	Table            string
	Inserted         int
	AlreadyPresent   int
	SkippedMalformed int
	Filtered         bool // skipped because the table is not in the inclusion set
	Err              error
}

// Synchronizer syncs one table at a time from the source to the destination.
type Synchronizer struct {
	src     source.Reader
	dst     target.Operator
	tm      *typemap.TypeMap
	include selection.Set
	logger  *slog.Logger
}

// NewSynchronizer creates a Synchronizer.
func NewSynchronizer(src source.Reader, dst target.Operator, tm *typemap.TypeMap, include selection.Set, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{src: src, dst: dst, tm: tm, include: include, logger: logger}
}

// SyncTable synchronizes a single table end-to-end. Errors are reported in
// the Outcome rather than aborting the caller; a failure in one table never
// affects another.
func (s *Synchronizer) SyncTable(ctx context.Context, table string) Outcome {
	if !s.include.Contains(table) {
		s.logger.Info("skipping table not in selected list", "table", table)
		return Outcome{Table: table, Filtered: true}
	}

	cols, err := s.src.Columns(ctx, table)
	if err != nil {
		s.logger.Error("failed to read source schema", "table", table, "error", err)
		return Outcome{Table: table, Err: fmt.Errorf("reading source schema: %w", err)}
	}
	mapped := schema.MapColumns(cols, s.tm)
	colNames := schema.Names(mapped)

	s.logger.Info("ensuring destination table exists", "table", table)
	if err := s.dst.EnsureTable(ctx, table, mapped); err != nil {
		s.logger.Error("failed to create destination table", "table", table, "error", err)
		return Outcome{Table: table, Err: fmt.Errorf("creating destination table: %w", err)}
	}

	rows, err := s.src.ReadAll(ctx, table)
	if err != nil {
		s.logger.Error("failed to read source rows", "table", table, "error", err)
		return Outcome{Table: table, Err: fmt.Errorf("reading source rows: %w", err)}
	}

	dedupCol, dedupIdx, hasKey := SelectDedupKey(colNames)
	if !hasKey {
		s.logger.Info("no dedup column found, duplicates will not be detected", "table", table)
	}

	// The existing-key snapshot is taken once; rows written by concurrent
	// external writers during the run may still be seen as new.
	var existing map[string]struct{}
	if hasKey {
		existing = s.existingKeys(ctx, table, dedupCol)
	}

	var newRows []source.Row
	alreadyPresent := 0
	for _, row := range rows {
		if hasKey && dedupIdx < len(row) {
			if _, present := existing[row[dedupIdx].Key()]; present {
				alreadyPresent++
				continue
			}
		}
		newRows = append(newRows, row)
	}

	out := Outcome{Table: table, AlreadyPresent: alreadyPresent}

	var validRows []source.Row
	for i, row := range newRows {
		if len(row) < len(colNames) {
			out.SkippedMalformed++
			s.logger.Warn("skipping malformed row",
				"table", table, "row", i,
				"expected_columns", len(colNames), "got", len(row),
				"data", row.String())
			continue
		}
		// Trailing values beyond the column count are dropped at insert time.
		validRows = append(validRows, row)
	}
	if out.SkippedMalformed > 0 {
		s.logger.Warn("rows skipped due to insufficient column count",
			"table", table, "count", out.SkippedMalformed)
	}

	if len(validRows) == 0 {
		s.logger.Info("no new rows to insert", "table", table)
	} else if err := s.dst.InsertRows(ctx, table, colNames, validRows); err != nil {
		s.logger.Error("failed to insert rows",
			"table", table, "error", err, "sample_row", validRows[0].String())
		out.Err = fmt.Errorf("inserting rows: %w", err)
	} else {
		out.Inserted = len(validRows)
		s.logger.Info("inserted new rows", "table", table, "count", out.Inserted)
	}

	s.logger.Info("rows already present", "table", table, "count", alreadyPresent)
	return out
}

// existingKeys returns the membership set of dedup-column values already in
// the destination. A failed query degrades to an empty set so the table sync
// proceeds with every row treated as new.
func (s *Synchronizer) existingKeys(ctx context.Context, table, dedupCol string) map[string]struct{} {
	values, err := s.dst.ColumnValues(ctx, table, dedupCol)
	if err != nil {
		s.logger.Warn("failed to fetch existing keys, treating all rows as new",
			"table", table, "column", dedupCol, "error", err)
		return nil
	}

	keys := make(map[string]struct{}, len(values))
	for _, v := range values {
		keys[v.Key()] = struct{}{}
	}
	return keys
}
