package cli

import (
	"testing"

	"github.com/VOST-dev/committee-scheduler/internal/config"
)

func TestSelectSources(t *testing.T) {
	all := []config.Source{{ID: "council"}, {ID: "cityfeed"}}

	got, err := selectSources(all, "")
	if err != nil || len(got) != 2 {
		t.Errorf("empty id should keep all sources: %v, %v", got, err)
	}

	got, err = selectSources(all, "cityfeed")
	if err != nil || len(got) != 1 || got[0].ID != "cityfeed" {
		t.Errorf("selectSources(cityfeed) = %v, %v", got, err)
	}

	if _, err := selectSources(all, "unknown"); err == nil {
		t.Error("expected error for unknown source id")
	}
}

func TestBuildNotifier(t *testing.T) {
	if n, err := buildNotifier("none"); err != nil || n != nil {
		t.Errorf("none mode = %v, %v", n, err)
	}
	if n, err := buildNotifier("dry-run"); err != nil || n == nil {
		t.Errorf("dry-run mode = %v, %v", n, err)
	}
	if _, err := buildNotifier("carrier-pigeon"); err == nil {
		t.Error("expected error for invalid mode")
	}
}
