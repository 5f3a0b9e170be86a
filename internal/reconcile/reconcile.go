// Package reconcile compares the local ledger against an export CSV from the
// external app and reports ledger rows with no plausible counterpart. It is
// advisory only: false positives and negatives are acceptable, and neither
// input is ever modified.
package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/moneywiz-link/internal/dateutils"
	"fjacquet/moneywiz-link/internal/ledger"
	"fjacquet/moneywiz-link/internal/logging"
)

// Options tune the matching heuristic. Both knobs are deliberately loose;
// the external app rounds currencies and shifts timestamps.
type Options struct {
	// AmountTolerance is the maximum absolute amount difference treated
	// as equal.
	AmountTolerance decimal.Decimal
	// Window is the maximum timestamp distance when both sides carry a
	// parseable date. Rows without dates match on amount alone.
	Window time.Duration
}

// DefaultOptions returns the standard tolerance (0.01) and window (24h).
func DefaultOptions() Options {
	return Options{
		AmountTolerance: decimal.New(1, -2),
		Window:          24 * time.Hour,
	}
}

// Status is the reconciliation outcome for one ledger row.
type Status int

const (
	// Synced means a plausible counterpart exists in the export.
	Synced Status = iota
	// Missing means no export row matched; the entry is possibly not synced.
	Missing
)

// Entry pairs a ledger row with its reconciliation status.
type Entry struct {
	Row    ledger.Row
	Status Status
}

// Report is the outcome of one reconciliation run.
type Report struct {
	Entries []Entry
	missing []ledger.Row
}

// Build matches every ledger row against the export rows. Matching requires
// amounts within tolerance, timestamps within the window when both parse,
// equal accounts when both are present, and memo containment when both are
// present.
func Build(rows []ledger.Row, export []ExportRow, opts Options, log logging.Logger) *Report {
	if log == nil {
		log = logging.Nop()
	}

	report := &Report{Entries: make([]Entry, 0, len(rows))}
	for _, row := range rows {
		status := Missing
		if matchOne(row, export, opts) {
			status = Synced
		}
		report.Entries = append(report.Entries, Entry{Row: row, Status: status})
		if status == Missing {
			report.missing = append(report.missing, row)
			log.Debug("no export counterpart found",
				logging.Field{Key: "date", Value: row.Date},
				logging.Field{Key: "amount", Value: row.Amount},
				logging.Field{Key: "memo", Value: row.Memo})
		}
	}
	return report
}

func matchOne(row ledger.Row, export []ExportRow, opts Options) bool {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		// Unparseable ledger amounts can never be matched
		return false
	}

	rowDate, _, dateErr := dateutils.ParseDate(row.Date)
	hasDate := dateErr == nil

	for _, exp := range export {
		if !exp.HasAmount {
			continue
		}
		if amount.Sub(exp.Amount).Abs().GreaterThan(opts.AmountTolerance) {
			continue
		}
		if hasDate && exp.HasDate {
			diff := exp.Date.Sub(rowDate)
			if diff < 0 {
				diff = -diff
			}
			if diff > opts.Window {
				continue
			}
		}
		if row.Account != "" && exp.Account != "" && row.Account != exp.Account {
			continue
		}
		if !memoCompatible(row.Memo, exp.Memo) {
			continue
		}
		return true
	}
	return false
}

// MissingCount returns how many ledger rows found no counterpart.
func (r *Report) MissingCount() int {
	return len(r.missing)
}

// SyncedCount returns how many ledger rows matched an export row.
func (r *Report) SyncedCount() int {
	return len(r.Entries) - len(r.missing)
}

// Missing returns the ledger rows that are possibly not synced.
func (r *Report) Missing() []ledger.Row {
	return r.missing
}
