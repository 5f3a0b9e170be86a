package reconcile

import (
	"encoding/csv"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/moneywiz-link/internal/dateutils"
	"fjacquet/moneywiz-link/internal/txnerr"
)

// ExportRow is one row of the external app's export, reduced to the fields
// the matcher cares about. Export layouts vary between app versions, so the
// columns are sniffed from the header instead of being fixed.
type ExportRow struct {
	Date      time.Time
	HasDate   bool
	Amount    decimal.Decimal
	HasAmount bool
	Account   string
	Memo      string
}

// Candidate header names per field, checked in order, lowercased.
var sniffCandidates = map[string][]string{
	"date":    {"date", "transaction date", "time", "datetime", "created"},
	"amount":  {"amount", "value", "sum", "transaction amount"},
	"memo":    {"memo", "note", "description", "details"},
	"account": {"account", "from account", "wallet"},
}

// ReadExport parses an export CSV, auto-detecting which columns hold the
// date, amount, memo and account.
func ReadExport(path string) ([]ExportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := sniffColumns(records[0])

	rows := make([]ExportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, exportRowFrom(record, cols))
	}
	return rows, nil
}

func sniffColumns(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make(map[string]int)
	for field, candidates := range sniffCandidates {
		for _, candidate := range candidates {
			if idx, ok := byName[candidate]; ok {
				cols[field] = idx
				break
			}
		}
	}
	return cols
}

func exportRowFrom(record []string, cols map[string]int) ExportRow {
	get := func(field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var row ExportRow

	if raw := get("date"); raw != "" {
		if parsed, _, err := dateutils.ParseDate(raw); err == nil {
			row.Date = parsed
			row.HasDate = true
		}
	}

	if raw := strings.ReplaceAll(get("amount"), ",", ""); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil {
			row.Amount = parsed
			row.HasAmount = true
		}
	}

	row.Memo = get("memo")
	row.Account = get("account")
	return row
}

// memoCompatible accepts when either memo is empty, or one contains the
// other, case-insensitively.
func memoCompatible(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
