// Package history appends run outcomes to per-source history tables.
// History rows are the durable record of what each run did; they are
// append-only and never mutated.
package history

import (
	"context"
	"time"

	"github.com/VOST-dev/committee-scheduler/internal/logger"
	"github.com/VOST-dev/committee-scheduler/internal/meeting"
	"github.com/VOST-dev/committee-scheduler/internal/tablestore"
)

// Status of one orchestrated source run.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// DefaultDetail fills the detail cell when there is nothing to report.
const DefaultDetail = "-"

// timestampOffset shifts UTC wall-clock time to the fixed local offset
// recorded in history rows (UTC+9, not timezone-database-aware).
const timestampOffset = 9 * time.Hour

// Logger appends one timestamped outcome row per run to a history
// table. Logging is best-effort: an unreachable store is reported to
// diagnostics and never surfaces, so a logging failure can never mask
// the run outcome being reported.
type Logger struct {
	store tablestore.Store
	now   func() time.Time
}

// New creates a history logger backed by the given store.
func New(store tablestore.Store) *Logger {
	return &Logger{store: store, now: time.Now}
}

// Log appends one [timestamp, status, summary, detail] row to the named
// history table, creating the table with its header first if needed.
// An empty detail is recorded as "-". Log never returns an error.
func (l *Logger) Log(ctx context.Context, table string, status Status, summary, detail string) {
	if detail == "" {
		detail = DefaultDetail
	}
	row := []string{l.timestamp(), string(status), summary, detail}

	if err := l.append(ctx, table, row); err != nil {
		logger.Error("writing history entry", logger.Fields{
			"table":   table,
			"status":  string(status),
			"summary": summary,
		}, err)
	}
}

func (l *Logger) append(ctx context.Context, table string, row []string) error {
	exists, err := l.store.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		if err := l.store.CreateTable(ctx, table, meeting.HistoryHeader); err != nil {
			return err
		}
	}
	return l.store.AppendRow(ctx, table, row)
}

// timestamp formats the current wall-clock time at the fixed +9h offset
// with second precision.
func (l *Logger) timestamp() string {
	return l.now().UTC().Add(timestampOffset).Format("2006-01-02 15:04:05")
}
