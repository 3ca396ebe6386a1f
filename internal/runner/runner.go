// Package runner orchestrates the configured sources: scrape, upsert,
// record the outcome. Sources run strictly one at a time; no two
// network or table-store operations are ever in flight concurrently.
package runner

import (
	"context"
	"fmt"

	"github.com/VOST-dev/committee-scheduler/internal/history"
	"github.com/VOST-dev/committee-scheduler/internal/logger"
	"github.com/VOST-dev/committee-scheduler/internal/notifier"
	"github.com/VOST-dev/committee-scheduler/internal/reconcile"
	"github.com/VOST-dev/committee-scheduler/internal/source"
)

// Source pairs an adapter with its table configuration.
type Source struct {
	Adapter      source.Adapter
	MainTable    string
	HistoryTable string
}

// Runner drives all configured sources through one run.
type Runner struct {
	sources    []Source
	reconciler *reconcile.Reconciler
	history    *history.Logger
	notifier   notifier.Notifier // optional
}

// New creates a Runner. notify may be nil to disable announcements.
func New(sources []Source, rec *reconcile.Reconciler, hist *history.Logger, notify notifier.Notifier) *Runner {
	return &Runner{
		sources:    sources,
		reconciler: rec,
		history:    hist,
		notifier:   notify,
	}
}

// Execute runs every source in configured order and applies the
// top-level failure policy: on any error a FAILURE entry is written to
// every configured source's history table before the error is returned.
// Sources after the failing one are not attempted; sources completed
// before it are unaffected.
func (r *Runner) Execute(ctx context.Context) error {
	err := r.run(ctx)
	if err == nil {
		return nil
	}

	logger.Error("run aborted", nil, err)
	for _, src := range r.sources {
		r.history.Log(ctx, src.HistoryTable, history.StatusFailure, "run aborted", err.Error())
	}
	return err
}

func (r *Runner) run(ctx context.Context) error {
	for _, src := range r.sources {
		if err := r.runSource(ctx, src); err != nil {
			return fmt.Errorf("source %s: %w", src.Adapter.Name(), err)
		}
	}
	return nil
}

// runSource processes one source to completion: scrape, reconcile,
// write the history row. An empty scrape result is a success, not an
// error.
func (r *Runner) runSource(ctx context.Context, src Source) error {
	name := src.Adapter.Name()
	logger.Info("scraping source", logger.Fields{"source": name})

	records, err := src.Adapter.Scrape(ctx)
	if err != nil {
		return fmt.Errorf("scraping: %w", err)
	}
	logger.AddCounter("records.scraped", int64(len(records)))

	if len(records) == 0 {
		logger.Info("no records scraped", logger.Fields{"source": name})
		r.history.Log(ctx, src.HistoryTable, history.StatusSuccess, "0 records scraped", "")
		return nil
	}

	res, err := r.reconciler.Upsert(ctx, src.MainTable, records)
	if err != nil {
		return fmt.Errorf("upserting %d records: %w", len(records), err)
	}
	logger.AddCounter("rows.updated", int64(res.Updated))
	logger.AddCounter("rows.inserted", int64(res.Inserted))

	summary := fmt.Sprintf("%d records scraped: %d updated, %d inserted", len(records), res.Updated, res.Inserted)
	r.history.Log(ctx, src.HistoryTable, history.StatusSuccess, summary, "")
	logger.Info("source reconciled", logger.Fields{
		"source":   name,
		"updated":  res.Updated,
		"inserted": res.Inserted,
	})

	if r.notifier != nil && len(res.NewRecords) > 0 {
		// Announcement failures never fail the run; the table writes are
		// already committed.
		if err := r.notifier.Notify(res.NewRecords); err != nil {
			logger.Warn("announcing new meetings failed", logger.Fields{
				"source": name,
				"error":  err.Error(),
			})
		}
	}

	return nil
}
