package tablestore

import (
	"context"
	"fmt"
	"sync"
)

// InMemory is a Store kept in process memory. It backs dry runs, where
// the full reconciliation is exercised without touching the remote
// service, and the package tests.
type InMemory struct {
	mu     sync.Mutex
	tables map[string]*memTable
}

type memTable struct {
	header []string
	rows   [][]string // rows[0] is table row 2
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{tables: make(map[string]*memTable)}
}

// TableExists implements Store.
func (m *InMemory) TableExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tables[name]
	return ok, nil
}

// CreateTable implements Store.
func (m *InMemory) CreateTable(_ context.Context, name string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[name]; ok {
		return fmt.Errorf("table %s already exists", name)
	}
	m.tables[name] = &memTable{header: append([]string(nil), header...)}
	return nil
}

// ReadRange implements Store.
func (m *InMemory) ReadRange(_ context.Context, name string, fromRow, toRow, cols int) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %s does not exist", name)
	}
	if fromRow < 2 || toRow < fromRow {
		return nil, fmt.Errorf("invalid range %d..%d", fromRow, toRow)
	}

	var out [][]string
	for idx := fromRow; idx <= toRow; idx++ {
		i := idx - 2
		if i >= len(table.rows) {
			break
		}
		padded := make([]string, cols)
		copy(padded, table.rows[i])
		out = append(out, padded)
	}
	return out, nil
}

// AppendRow implements Store.
func (m *InMemory) AppendRow(_ context.Context, name string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[name]
	if !ok {
		return fmt.Errorf("table %s does not exist", name)
	}
	table.rows = append(table.rows, append([]string(nil), row...))
	return nil
}

// UpdateRow implements Store.
func (m *InMemory) UpdateRow(_ context.Context, name string, rowIndex int, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[name]
	if !ok {
		return fmt.Errorf("table %s does not exist", name)
	}
	i := rowIndex - 2
	if i < 0 || i >= len(table.rows) {
		return fmt.Errorf("row %d out of range in table %s", rowIndex, name)
	}
	table.rows[i] = append([]string(nil), row...)
	return nil
}

// Rows returns a copy of the named table's data rows (header excluded).
// Missing tables yield nil.
func (m *InMemory) Rows(name string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	table, ok := m.tables[name]
	if !ok {
		return nil
	}
	out := make([][]string, len(table.rows))
	for i, row := range table.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
