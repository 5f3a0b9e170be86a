// Package reconcile implements the command that diffs the local ledger
// against an export from the external app.
package reconcile

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/moneywiz-link/cmd/root"
	"fjacquet/moneywiz-link/internal/ledger"
	"fjacquet/moneywiz-link/internal/logging"
	"fjacquet/moneywiz-link/internal/reconcile"
	"fjacquet/moneywiz-link/internal/txnerr"
)

var (
	exportFile string
	ledgerFile string
	tolerance  string
	window     time.Duration
)

// Cmd represents the reconcile command
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Report ledger rows with no counterpart in an export CSV",
	Long: `Compare the local ledger against an export CSV from the external app and
list ledger rows that found no plausible match. The report is best-effort and
advisory; nothing is modified.`,
	RunE: reconcileFunc,
}

func init() {
	Cmd.Flags().StringVar(&exportFile, "export", "", "Path to the external app's export CSV")
	Cmd.Flags().StringVar(&ledgerFile, "ledger", "", "Path to the local ledger CSV (default from config)")
	Cmd.Flags().StringVar(&tolerance, "tolerance", "", "Amount match tolerance (default from config)")
	Cmd.Flags().DurationVar(&window, "window", 0, "Timestamp match window, e.g. 24h (default from config)")
	_ = Cmd.MarkFlagRequired("export")
}

func reconcileFunc(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	ledgerPath := ledgerFile
	if ledgerPath == "" {
		ledgerPath = cfg.Paths.Ledger
	}

	rows, err := ledger.ReadAll(ledgerPath)
	if err != nil {
		return err
	}

	export, err := reconcile.ReadExport(exportFile)
	if err != nil {
		return err
	}

	report := reconcile.Build(rows, export, opts, logging.NewLogrusAdapter(root.Log))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Export rows:  %d\n", len(export))
	fmt.Fprintf(out, "Ledger rows:  %d\n", len(rows))
	fmt.Fprintf(out, "Synced:       %d\n", report.SyncedCount())
	fmt.Fprintf(out, "Possibly not synced: %d\n", report.MissingCount())

	warn := color.New(color.FgYellow)
	for _, row := range report.Missing() {
		warn.Fprintf(out, "- %s %s %s %s %s %s %s\n",
			row.Date, row.Type, row.Amount, row.Currency, row.Account, row.Category, row.Memo)
	}

	return nil
}

func buildOptions() (reconcile.Options, error) {
	cfg := root.Cfg
	opts := reconcile.DefaultOptions()

	rawTolerance := tolerance
	if rawTolerance == "" {
		rawTolerance = cfg.Reconcile.AmountTolerance
	}
	if rawTolerance != "" {
		parsed, err := decimal.NewFromString(rawTolerance)
		if err != nil || parsed.IsNegative() {
			return opts, &txnerr.ValidationError{Invariant: "tolerance must be a non-negative decimal"}
		}
		opts.AmountTolerance = parsed
	}

	if window > 0 {
		opts.Window = window
	} else if cfg.Reconcile.WindowHours > 0 {
		opts.Window = time.Duration(cfg.Reconcile.WindowHours) * time.Hour
	}

	return opts, nil
}
