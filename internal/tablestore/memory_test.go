package tablestore

import (
	"context"
	"testing"
)

func TestInMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	exists, err := store.TableExists(ctx, "meetings")
	if err != nil || exists {
		t.Fatalf("TableExists on empty store = %v, %v", exists, err)
	}

	if err := store.CreateTable(ctx, "meetings", []string{"name", "date", "time", "agenda", "detailUrl"}); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	if err := store.CreateTable(ctx, "meetings", nil); err == nil {
		t.Error("expected error creating duplicate table")
	}

	if err := store.AppendRow(ctx, "meetings", []string{"a", "2026-01-01", "", "", "https://x/1"}); err != nil {
		t.Fatalf("appending: %v", err)
	}
	if err := store.AppendRow(ctx, "meetings", []string{"b", "2026-01-02", "", "", "https://x/2"}); err != nil {
		t.Fatalf("appending: %v", err)
	}

	// Data rows occupy table rows 2 and 3.
	rows, err := store.ReadRange(ctx, "meetings", 2, 10000, 5)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "a" || rows[1][0] != "b" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	if err := store.UpdateRow(ctx, "meetings", 3, []string{"b2", "2026-01-03", "", "", "https://x/2"}); err != nil {
		t.Fatalf("updating: %v", err)
	}
	if got := store.Rows("meetings"); got[1][0] != "b2" {
		t.Errorf("row 3 not overwritten: %v", got[1])
	}

	if err := store.UpdateRow(ctx, "meetings", 9, nil); err == nil {
		t.Error("expected out-of-range error")
	}
	if err := store.AppendRow(ctx, "absent", nil); err == nil {
		t.Error("expected error appending to missing table")
	}
}

func TestInMemoryReadRangePartialWindow(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	store.CreateTable(ctx, "t", []string{"a"})
	for i := 0; i < 5; i++ {
		store.AppendRow(ctx, "t", []string{"row"})
	}

	rows, err := store.ReadRange(ctx, "t", 4, 10, 1)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	// Rows 4..6 are populated; 7..10 are beyond the data region.
	if len(rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(rows))
	}
}
