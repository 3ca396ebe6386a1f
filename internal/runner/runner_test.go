package runner

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/VOST-dev/committee-scheduler/internal/history"
	"github.com/VOST-dev/committee-scheduler/internal/meeting"
	"github.com/VOST-dev/committee-scheduler/internal/reconcile"
	"github.com/VOST-dev/committee-scheduler/internal/tablestore"
)

// stubAdapter returns canned records or a canned error.
type stubAdapter struct {
	name    string
	records []meeting.Record
	err     error
	called  bool
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Scrape(context.Context) ([]meeting.Record, error) {
	s.called = true
	return s.records, s.err
}

func record(name, url string) meeting.Record {
	return meeting.Record{Name: name, Date: "2026-02-17", DetailURL: url}
}

func newRunner(store tablestore.Store, sources ...Source) *Runner {
	return New(sources, reconcile.New(store), history.New(store), nil)
}

func TestExecuteSuccessWritesSummaryRows(t *testing.T) {
	store := tablestore.NewInMemory()
	adapter := &stubAdapter{
		name:    "council",
		records: []meeting.Record{record("a", "https://x/1"), record("b", "https://x/2")},
	}
	r := newRunner(store, Source{Adapter: adapter, MainTable: "council_meetings", HistoryTable: "council_history"})

	if err := r.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(store.Rows("council_meetings")); got != 2 {
		t.Errorf("main table rows = %d, want 2", got)
	}

	rows := store.Rows("council_history")
	if len(rows) != 1 {
		t.Fatalf("history rows = %d, want 1", len(rows))
	}
	if rows[0][1] != string(history.StatusSuccess) {
		t.Errorf("status = %q", rows[0][1])
	}
	if want := "2 records scraped: 0 updated, 2 inserted"; rows[0][2] != want {
		t.Errorf("summary = %q, want %q", rows[0][2], want)
	}
	if rows[0][3] != history.DefaultDetail {
		t.Errorf("detail = %q, want %q", rows[0][3], history.DefaultDetail)
	}
}

func TestExecuteZeroRecordsIsSuccess(t *testing.T) {
	store := tablestore.NewInMemory()
	adapter := &stubAdapter{name: "council"}
	r := newRunner(store, Source{Adapter: adapter, MainTable: "m", HistoryTable: "h"})

	if err := r.Execute(context.Background()); err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}

	rows := store.Rows("h")
	if len(rows) != 1 || rows[0][1] != "SUCCESS" || rows[0][2] != "0 records scraped" {
		t.Errorf("history rows = %v", rows)
	}

	// The main table is not touched when there is nothing to upsert.
	if exists, _ := store.TableExists(context.Background(), "m"); exists {
		t.Error("main table should not be created for an empty result")
	}
}

func TestExecuteFailureAbortsRemainingSources(t *testing.T) {
	store := tablestore.NewInMemory()
	failing := &stubAdapter{name: "council", err: fmt.Errorf("listing fetch failed")}
	next := &stubAdapter{name: "cityfeed", records: []meeting.Record{record("x", "https://x/9")}}

	r := newRunner(store,
		Source{Adapter: failing, MainTable: "m1", HistoryTable: "h1"},
		Source{Adapter: next, MainTable: "m2", HistoryTable: "h2"},
	)

	err := r.Execute(context.Background())
	if err == nil {
		t.Fatal("expected the failure to propagate")
	}
	if !strings.Contains(err.Error(), "council") || !strings.Contains(err.Error(), "listing fetch failed") {
		t.Errorf("error = %q", err)
	}

	if next.called {
		t.Error("source after the failing one must not be attempted")
	}

	// The top-level catch writes a FAILURE entry to every configured
	// source's history table.
	for _, table := range []string{"h1", "h2"} {
		rows := store.Rows(table)
		if len(rows) != 1 {
			t.Fatalf("%s rows = %d, want 1", table, len(rows))
		}
		if rows[0][1] != string(history.StatusFailure) {
			t.Errorf("%s status = %q", table, rows[0][1])
		}
		if !strings.Contains(rows[0][3], "listing fetch failed") {
			t.Errorf("%s detail = %q", table, rows[0][3])
		}
	}

	if got := len(store.Rows("m2")); got != 0 {
		t.Errorf("main table of the later source has %d rows, want 0", got)
	}
}

func TestExecuteCompletedSourcesAreUnaffectedByLaterFailure(t *testing.T) {
	store := tablestore.NewInMemory()
	first := &stubAdapter{name: "council", records: []meeting.Record{record("a", "https://x/1")}}
	second := &stubAdapter{name: "cityfeed", err: fmt.Errorf("feed unavailable")}

	r := newRunner(store,
		Source{Adapter: first, MainTable: "m1", HistoryTable: "h1"},
		Source{Adapter: second, MainTable: "m2", HistoryTable: "h2"},
	)

	if err := r.Execute(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	// Source 1 completed fully before source 2 started: its row stands
	// and its history holds the SUCCESS entry followed by the run-level
	// FAILURE entry.
	if got := len(store.Rows("m1")); got != 1 {
		t.Errorf("first source rows = %d, want 1", got)
	}
	rows := store.Rows("h1")
	if len(rows) != 2 || rows[0][1] != "SUCCESS" || rows[1][1] != "FAILURE" {
		t.Errorf("h1 rows = %v", rows)
	}
}

// notifyRecorder captures announced records.
type notifyRecorder struct {
	got [][]meeting.Record
}

func (n *notifyRecorder) Notify(records []meeting.Record) error {
	n.got = append(n.got, records)
	return nil
}

func TestExecuteAnnouncesOnlyNewRecords(t *testing.T) {
	store := tablestore.NewInMemory()
	adapter := &stubAdapter{
		name:    "council",
		records: []meeting.Record{record("a", "https://x/1"), record("b", "https://x/2")},
	}
	recorder := &notifyRecorder{}
	r := New(
		[]Source{{Adapter: adapter, MainTable: "m", HistoryTable: "h"}},
		reconcile.New(store), history.New(store), recorder,
	)

	ctx := context.Background()
	if err := r.Execute(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(recorder.got) != 1 || len(recorder.got[0]) != 2 {
		t.Fatalf("first run announcements = %v", recorder.got)
	}

	// Second identical run inserts nothing, so nothing is announced.
	if err := r.Execute(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(recorder.got) != 1 {
		t.Errorf("second run should announce nothing, got %v", recorder.got[1:])
	}
}
