package source

import (
	"context"

	"github.com/healthsync/healthsync/internal/schema"
)

// Reader provides read-only access to the source database.
type Reader interface {
	Connect(ctx context.Context) error
	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]schema.Column, error)
	ReadAll(ctx context.Context, table string) ([]Row, error)
	Close() error
}
