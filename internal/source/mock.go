package source

import (
	"context"
	"fmt"

	"github.com/healthsync/healthsync/internal/schema"
)

// MockReader is a test double for the Reader interface.
type MockReader struct {
	ConnectErr error

	TableList []string
	TablesErr error

	ColumnsByTable map[string][]schema.Column
	ColumnsErr     map[string]error

	RowsByTable map[string][]Row
	ReadErr     map[string]error

	Connected bool
	Closed    bool
}

func (m *MockReader) Connect(_ context.Context) error {
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.Connected = true
	return nil
}

func (m *MockReader) Tables(_ context.Context) ([]string, error) {
	if m.TablesErr != nil {
		return nil, m.TablesErr
	}
	return m.TableList, nil
}

func (m *MockReader) Columns(_ context.Context, table string) ([]schema.Column, error) {
	if err := m.ColumnsErr[table]; err != nil {
		return nil, err
	}
	if cols, ok := m.ColumnsByTable[table]; ok {
		return cols, nil
	}
	return nil, fmt.Errorf("no columns configured for table %s", table)
}

func (m *MockReader) ReadAll(_ context.Context, table string) ([]Row, error) {
	if err := m.ReadErr[table]; err != nil {
		return nil, err
	}
	return m.RowsByTable[table], nil
}

func (m *MockReader) Close() error {
	m.Closed = true
	return nil
}
