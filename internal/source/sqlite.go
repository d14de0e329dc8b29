package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/healthsync/healthsync/internal/schema"
)

// SQLiteReader implements Reader for a SQLite database file.
type SQLiteReader struct {
	path string
	db   *sql.DB
}

// NewSQLiteReader creates a reader for the given database file.
func NewSQLiteReader(path string) *SQLiteReader {
	return &SQLiteReader{path: path}
}

func (r *SQLiteReader) Connect(ctx context.Context) error {
	db, err := sql.Open("sqlite", r.path)
	if err != nil {
		return fmt.Errorf("opening SQLite database: %w", err)
	}
	// The whole run is serial on one connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pinging SQLite database: %w", err)
	}
	r.db = db
	return nil
}

// Tables lists every user table in the database.
func (r *SQLiteReader) Tables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	return tables, nil
}

// Columns returns the declared columns of a table in definition order.
func (r *SQLiteReader) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	query := fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdentSQLite(table))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading column metadata for %s: %w", table, err)
	}
	defer rows.Close()

	var cols []schema.Column
	for rows.Next() {
		var (
			cid        int
			name       string
			declared   sql.NullString
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scanning column metadata for %s: %w", table, err)
		}
		cols = append(cols, schema.Column{Name: name, DeclaredType: declared.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column metadata for %s: %w", table, err)
	}
	return cols, nil
}

// ReadAll materializes every row of a table.
func (r *SQLiteReader) ReadAll(ctx context.Context, table string) ([]Row, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, quoteIdentSQLite(table))
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading rows from %s: %w", table, err)
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("resolving columns of %s: %w", table, err)
	}

	var result []Row
	for rows.Next() {
		raw := make([]any, len(colNames))
		ptrs := make([]any, len(colNames))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row from %s: %w", table, err)
		}

		row := make(Row, len(raw))
		for i, v := range raw {
			val, err := FromAny(v)
			if err != nil {
				return nil, fmt.Errorf("converting value from %s.%s: %w", table, colNames[i], err)
			}
			row[i] = val
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows of %s: %w", table, err)
	}
	return result, nil
}

func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func quoteIdentSQLite(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
