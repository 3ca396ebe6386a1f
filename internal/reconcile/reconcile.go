// Package reconcile merges freshly scraped meeting records into a
// persisted table without duplicating, losing or reordering rows.
package reconcile

import (
	"context"
	"fmt"

	"github.com/VOST-dev/committee-scheduler/internal/meeting"
	"github.com/VOST-dev/committee-scheduler/internal/tablestore"
)

const (
	// dataStartRow is the first data row; row 1 holds the header.
	dataStartRow = 2

	// maxScanRows bounds the read window on the data region. The table
	// service returns only populated rows, so this is a window, not a
	// row limit.
	maxScanRows = 10000

	// urlColumn is the 0-based position of detailUrl within a row.
	urlColumn = 4
)

// Result reports the outcome of one upsert pass.
type Result struct {
	Updated  int
	Inserted int

	// NewRecords are the records that were appended rather than
	// overwritten, in input order.
	NewRecords []meeting.Record
}

// Reconciler upserts meeting records into tables keyed by their
// detail-page URL.
type Reconciler struct {
	store tablestore.Store
}

// New creates a Reconciler backed by the given store.
func New(store tablestore.Store) *Reconciler {
	return &Reconciler{store: store}
}

// EnsureTable creates the named meeting table with its fixed 5-column
// header if it does not exist yet. Safe to call every run.
func (r *Reconciler) EnsureTable(ctx context.Context, name string) error {
	exists, err := r.store.TableExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking table %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if err := r.store.CreateTable(ctx, name, meeting.Header); err != nil {
		return fmt.Errorf("creating table %s: %w", name, err)
	}
	return nil
}

// Upsert writes records into the named table in input order: a record
// whose detailUrl already keys an existing row overwrites that full row
// (an update is total, not a field-by-field merge), any other record is
// appended after the table's last row. Writes are issued one at a time;
// a mid-sequence failure aborts the remaining records and the returned
// error reflects it, while rows committed before the failure stand.
func (r *Reconciler) Upsert(ctx context.Context, table string, records []meeting.Record) (Result, error) {
	var res Result

	if err := r.EnsureTable(ctx, table); err != nil {
		return res, err
	}

	rows, err := r.store.ReadRange(ctx, table, dataStartRow, maxScanRows, len(meeting.Header))
	if err != nil {
		return res, fmt.Errorf("reading table %s: %w", table, err)
	}

	// Later rows win on duplicate keys. Duplicates already persisted are
	// tolerated, not repaired.
	rowByURL := make(map[string]int, len(rows))
	for i, row := range rows {
		if url := row[urlColumn]; url != "" {
			rowByURL[url] = dataStartRow + i
		}
	}
	nextRow := dataStartRow + len(rows)

	for _, rec := range records {
		if idx, ok := rowByURL[rec.DetailURL]; ok {
			if err := r.store.UpdateRow(ctx, table, idx, rec.Row()); err != nil {
				return res, fmt.Errorf("updating row %d in %s: %w", idx, table, err)
			}
			res.Updated++
			continue
		}

		if err := r.store.AppendRow(ctx, table, rec.Row()); err != nil {
			return res, fmt.Errorf("appending row to %s: %w", table, err)
		}
		rowByURL[rec.DetailURL] = nextRow
		nextRow++
		res.Inserted++
		res.NewRecords = append(res.NewRecords, rec)
	}

	return res, nil
}
