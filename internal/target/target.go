package target

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthsync/healthsync/internal/schema"
	"github.com/healthsync/healthsync/internal/source"
)

// Operator defines operations on the PostgreSQL destination.
type Operator interface {
	Connect(ctx context.Context) error
	// EnsureTable creates the destination table if it does not exist. An
	// existing table is left untouched regardless of its column types.
	EnsureTable(ctx context.Context, table string, cols []schema.MappedColumn) error
	// ColumnValues returns every value currently stored in one column.
	ColumnValues(ctx context.Context, table, column string) ([]source.Value, error)
	// InsertRows bulk-inserts rows in a single transaction. Each row must
	// carry at least len(cols) values; extras are ignored. On error nothing
	// is inserted.
	InsertRows(ctx context.Context, table string, cols []string, rows []source.Row) error
	Close(ctx context.Context) error
}

// insertSQL builds a parameterized multi-row INSERT statement.
func insertSQL(table string, cols []string, rowCount int) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = schema.QuoteIdent(c)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", schema.QuoteIdent(table), strings.Join(quoted, ", "))
	n := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c := range cols {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteString(")")
	}
	return b.String()
}
