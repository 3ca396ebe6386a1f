package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/VOST-dev/committee-scheduler/internal/tablestore"
)

func TestLogAppendsTimestampedRow(t *testing.T) {
	ctx := context.Background()
	store := tablestore.NewInMemory()
	l := New(store)
	l.now = func() time.Time {
		return time.Date(2026, 2, 17, 1, 30, 45, 0, time.UTC)
	}

	l.Log(ctx, "council_history", StatusSuccess, "12 records scraped: 10 updated, 2 inserted", "")

	rows := store.Rows("council_history")
	if len(rows) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(rows))
	}
	// 01:30:45 UTC plus the fixed 9-hour offset.
	want := []string{"2026-02-17 10:30:45", "SUCCESS", "12 records scraped: 10 updated, 2 inserted", "-"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("cell %d = %q, want %q", i, rows[0][i], cell)
		}
	}
}

func TestLogOffsetRollsPastMidnight(t *testing.T) {
	ctx := context.Background()
	store := tablestore.NewInMemory()
	l := New(store)
	l.now = func() time.Time {
		return time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC)
	}

	l.Log(ctx, "h", StatusFailure, "run aborted", "source council: scraping: listing fetch failed")

	rows := store.Rows("h")
	if rows[0][0] != "2026-01-01 05:00:00" {
		t.Errorf("timestamp = %q, want next-day rollover", rows[0][0])
	}
	if rows[0][1] != "FAILURE" || rows[0][3] == "-" {
		t.Errorf("unexpected row: %v", rows[0])
	}
}

func TestLogIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	store := tablestore.NewInMemory()
	l := New(store)

	l.Log(ctx, "h", StatusSuccess, "first", "")
	l.Log(ctx, "h", StatusSuccess, "second", "")

	rows := store.Rows("h")
	if len(rows) != 2 || rows[0][2] != "first" || rows[1][2] != "second" {
		t.Errorf("rows = %v", rows)
	}
}

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) TableExists(context.Context, string) (bool, error) {
	return false, fmt.Errorf("store unreachable")
}
func (brokenStore) CreateTable(context.Context, string, []string) error {
	return fmt.Errorf("store unreachable")
}
func (brokenStore) ReadRange(context.Context, string, int, int, int) ([][]string, error) {
	return nil, fmt.Errorf("store unreachable")
}
func (brokenStore) AppendRow(context.Context, string, []string) error {
	return fmt.Errorf("store unreachable")
}
func (brokenStore) UpdateRow(context.Context, string, int, []string) error {
	return fmt.Errorf("store unreachable")
}

func TestLogSwallowsStoreFailures(t *testing.T) {
	l := New(brokenStore{})
	// Must not panic or surface the error in any way.
	l.Log(context.Background(), "h", StatusFailure, "run aborted", "boom")
}
