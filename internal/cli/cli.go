// Package cli wires the configuration, adapters, reconciler and
// history logger into the committee-scheduler command.
package cli

import (
	"fmt"
	"os"

	"github.com/VOST-dev/committee-scheduler/internal/config"
	"github.com/VOST-dev/committee-scheduler/internal/fetch"
	"github.com/VOST-dev/committee-scheduler/internal/history"
	"github.com/VOST-dev/committee-scheduler/internal/logger"
	"github.com/VOST-dev/committee-scheduler/internal/notifier"
	"github.com/VOST-dev/committee-scheduler/internal/reconcile"
	"github.com/VOST-dev/committee-scheduler/internal/runner"
	"github.com/VOST-dev/committee-scheduler/internal/source"
	"github.com/VOST-dev/committee-scheduler/internal/tablestore"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagSource  string
	flagDryRun  bool
	flagNotify  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "committee-scheduler",
		Short: "Harvest committee-meeting announcements into the table service",
		Long: `Scrapes committee-meeting announcements from the configured government
sources, reconciles them into the table service keyed by detail-page URL,
and appends one outcome row per source to its history table.`,
		RunE:          runSync,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "config.yml", "Path to the YAML configuration file")
	cmd.Flags().StringVar(&flagSource, "source", "", "Restrict the run to one source id")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Reconcile into an in-memory store instead of the table service")
	cmd.Flags().StringVar(&flagNotify, "notify", "none", "Announce new meetings: none, dry-run or twitter")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runSync is the main command logic
func runSync(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	sources, err := selectSources(cfg.Sources, flagSource)
	if err != nil {
		return err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing table store: %w", err)
	}

	notify, err := buildNotifier(flagNotify)
	if err != nil {
		return err
	}

	client := fetch.New(cfg.Fetch.MinInterval.Std(), cfg.Fetch.Timeout.Std(), cfg.Fetch.UserAgent)

	runnerSources := make([]runner.Source, 0, len(sources))
	for _, sc := range sources {
		adapter, err := source.New(sc, client)
		if err != nil {
			return fmt.Errorf("building source %s: %w", sc.ID, err)
		}
		runnerSources = append(runnerSources, runner.Source{
			Adapter:      adapter,
			MainTable:    sc.MainTable,
			HistoryTable: sc.HistoryTable,
		})
	}

	r := runner.New(runnerSources, reconcile.New(store), history.New(store), notify)

	// Execute has already written the FAILURE history entries by the
	// time an error surfaces here; the caller only sets the exit status.
	if err := r.Execute(cmd.Context()); err != nil {
		return err
	}

	if flagVerbose {
		fields := logger.Fields{}
		for name, value := range logger.CountersSnapshot() {
			fields[name] = value
		}
		logger.Debug("run counters", fields)
	}
	return nil
}

// selectSources restricts the configured sources to one id when
// requested. The configured order is preserved.
func selectSources(all []config.Source, id string) ([]config.Source, error) {
	if id == "" {
		return all, nil
	}
	for _, src := range all {
		if src.ID == id {
			return []config.Source{src}, nil
		}
	}
	return nil, fmt.Errorf("unknown source id: %s", id)
}

// buildStore selects the table store backend. Dry runs exercise the
// full reconciliation against an in-memory store.
func buildStore(cfg *config.Config) (tablestore.Store, error) {
	if flagDryRun {
		logger.Info("dry run: using in-memory table store", nil)
		return tablestore.NewInMemory(), nil
	}
	return tablestore.NewHTTPStore(cfg.Store.BaseURL, cfg.Store.Token, cfg.Store.Timeout.Std())
}

// buildNotifier selects the announcement backend.
func buildNotifier(mode string) (notifier.Notifier, error) {
	switch mode {
	case "", "none":
		return nil, nil
	case "dry-run":
		return notifier.NewDryRunNotifier(), nil
	case "twitter":
		return notifier.NewTwitterNotifier()
	default:
		return nil, fmt.Errorf("invalid notify mode: %s (must be 'none', 'dry-run' or 'twitter')", mode)
	}
}
