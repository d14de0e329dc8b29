package schema

import (
	"fmt"
	"strings"

	"github.com/healthsync/healthsync/internal/typemap"
)

// Column represents a source table column as SQLite declares it. Column order
// is significant: it defines the positional correspondence between a row's
// values and the table's columns.
type Column struct {
	Name         string
	DeclaredType string
}

// MappedColumn pairs a source column name with its destination type.
type MappedColumn struct {
	Name string
	Type typemap.PGType
}

// MapColumns maps every source column to a destination column, preserving
// order and names. Exactly one MappedColumn is produced per Column.
func MapColumns(cols []Column, tm *typemap.TypeMap) []MappedColumn {
	mapped := make([]MappedColumn, len(cols))
	for i, c := range cols {
		mapped[i] = MappedColumn{Name: c.Name, Type: tm.Resolve(c.DeclaredType)}
	}
	return mapped
}

// Names returns the column names in order.
func Names(cols []MappedColumn) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// CreateTableSQL builds an idempotent CREATE TABLE statement for the
// destination. IF NOT EXISTS keeps repeated runs from failing or altering a
// table created by an earlier run, even if the freshly computed types differ.
func CreateTableSQL(table string, cols []MappedColumn) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%s %s", QuoteIdent(c.Name), c.Type)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", QuoteIdent(table), strings.Join(defs, ", "))
}

// QuoteIdent quotes a PostgreSQL identifier, doubling embedded quotes.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
