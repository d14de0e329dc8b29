package target

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/schema"
	"github.com/healthsync/healthsync/internal/source"
)

// PostgresOperator implements Operator on a single pgx connection. All
// statements for a run are issued serially on that one connection, with an
// explicit commit after DDL and after a successful insert.
type PostgresOperator struct {
	cfg  *config.DestinationConfig
	conn *pgx.Conn
}

// NewPostgresOperator creates an operator for the configured destination.
func NewPostgresOperator(cfg *config.DestinationConfig) *PostgresOperator {
	return &PostgresOperator{cfg: cfg}
}

func (o *PostgresOperator) Connect(ctx context.Context) error {
	connStr := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s",
		o.cfg.Host, o.cfg.Port, o.cfg.Database, o.cfg.Username, o.cfg.Password,
	)
	if o.cfg.SSL {
		connStr += " sslmode=require"
	} else {
		connStr += " sslmode=disable"
	}

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return fmt.Errorf("pinging PostgreSQL: %w", err)
	}
	o.conn = conn
	return nil
}

func (o *PostgresOperator) EnsureTable(ctx context.Context, table string, cols []schema.MappedColumn) error {
	tx, err := o.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op once committed

	if _, err := tx.Exec(ctx, schema.CreateTableSQL(table, cols)); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing table creation for %s: %w", table, err)
	}
	return nil
}

func (o *PostgresOperator) ColumnValues(ctx context.Context, table, column string) ([]source.Value, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s", schema.QuoteIdent(column), schema.QuoteIdent(table))
	rows, err := o.conn.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("reading %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var values []source.Value
	for rows.Next() {
		var raw any
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning %s.%s: %w", table, column, err)
		}
		v, err := source.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("converting %s.%s: %w", table, column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s.%s: %w", table, column, err)
	}
	return values, nil
}

func (o *PostgresOperator) InsertRows(ctx context.Context, table string, cols []string, rows []source.Row) error {
	if len(rows) == 0 {
		return nil
	}

	args := make([]any, 0, len(rows)*len(cols))
	for _, row := range rows {
		args = append(args, row.Args(len(cols))...)
	}

	tx, err := o.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) // rolls back the whole insert on failure

	if _, err := tx.Exec(ctx, insertSQL(table, cols, len(rows)), args...); err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing insert into %s: %w", table, err)
	}
	return nil
}

func (o *PostgresOperator) Close(ctx context.Context) error {
	if o.conn != nil {
		return o.conn.Close(ctx)
	}
	return nil
}
