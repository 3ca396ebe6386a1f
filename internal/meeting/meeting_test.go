package meeting

import (
	"reflect"
	"testing"
)

func TestRowRoundTrip(t *testing.T) {
	rec := Record{
		Name:      "総務委員会",
		Date:      "2026-02-17",
		Time:      "18時00分～20時00分",
		Agenda:    "議案第1号\n議案第2号",
		DetailURL: "https://www.pref.example.jp/gikai/iinkai/20260217.html",
	}

	row := rec.Row()
	if len(row) != len(Header) {
		t.Fatalf("expected %d cells, got %d", len(Header), len(row))
	}

	if got := FromRow(row); !reflect.DeepEqual(got, rec) {
		t.Errorf("round trip changed record: got %+v, want %+v", got, rec)
	}
}

func TestFromRowPadsShortRows(t *testing.T) {
	rec := FromRow([]string{"環境委員会", "2026-03-01"})

	if rec.Name != "環境委員会" || rec.Date != "2026-03-01" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Time != "" || rec.Agenda != "" || rec.DetailURL != "" {
		t.Errorf("expected missing cells to be empty, got %+v", rec)
	}
}
