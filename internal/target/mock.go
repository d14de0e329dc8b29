package target

import (
	"context"

	"github.com/healthsync/healthsync/internal/schema"
	"github.com/healthsync/healthsync/internal/source"
)

// MockOperator is a test double for the Operator interface.
type MockOperator struct {
	ConnectErr error

	EnsureErr map[string]error

	ColumnValuesByTable map[string][]source.Value // key: "table.column"
	ColumnValuesErr     map[string]error

	InsertErr map[string]error

	// Track calls
	EnsuredTables []string
	EnsuredCols   map[string][]schema.MappedColumn
	Inserted      map[string][]source.Row
	InsertedCols  map[string][]string
	Connected     bool
	Closed        bool
}

func (m *MockOperator) Connect(_ context.Context) error {
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.Connected = true
	return nil
}

func (m *MockOperator) EnsureTable(_ context.Context, table string, cols []schema.MappedColumn) error {
	if err := m.EnsureErr[table]; err != nil {
		return err
	}
	m.EnsuredTables = append(m.EnsuredTables, table)
	if m.EnsuredCols == nil {
		m.EnsuredCols = make(map[string][]schema.MappedColumn)
	}
	m.EnsuredCols[table] = cols
	return nil
}

func (m *MockOperator) ColumnValues(_ context.Context, table, column string) ([]source.Value, error) {
	key := table + "." + column
	if err := m.ColumnValuesErr[key]; err != nil {
		return nil, err
	}
	return m.ColumnValuesByTable[key], nil
}

func (m *MockOperator) InsertRows(_ context.Context, table string, cols []string, rows []source.Row) error {
	if err := m.InsertErr[table]; err != nil {
		return err
	}
	if m.Inserted == nil {
		m.Inserted = make(map[string][]source.Row)
	}
	if m.InsertedCols == nil {
		m.InsertedCols = make(map[string][]string)
	}
	m.Inserted[table] = append(m.Inserted[table], rows...)
	m.InsertedCols[table] = cols
	return nil
}

func (m *MockOperator) Close(_ context.Context) error {
	m.Closed = true
	return nil
}
