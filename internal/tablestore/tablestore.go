// Package tablestore provides access to the remote table service that
// persists meeting tables and run-history tables.
package tablestore

import "context"

// Store is the tabular store contract the reconciler and audit logger
// depend on. Row indexes are 1-based; row 1 is the header row and data
// begins at row 2. All operations are idempotent-safe to retry at the
// caller's discretion.
type Store interface {
	// TableExists reports whether the named table exists.
	TableExists(ctx context.Context, name string) (bool, error)

	// CreateTable creates the named table with the given header row.
	CreateTable(ctx context.Context, name string, header []string) error

	// ReadRange returns the populated rows between fromRow and toRow
	// inclusive, each padded or truncated to cols cells. Rows are
	// contiguous starting at fromRow; rows beyond the populated region
	// are omitted, not returned empty.
	ReadRange(ctx context.Context, name string, fromRow, toRow, cols int) ([][]string, error)

	// AppendRow adds a row after the table's current last row.
	AppendRow(ctx context.Context, name string, row []string) error

	// UpdateRow overwrites the row at the 1-based rowIndex.
	UpdateRow(ctx context.Context, name string, rowIndex int, row []string) error
}
