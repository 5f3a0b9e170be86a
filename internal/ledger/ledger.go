// Package ledger persists canonical transaction records to the local
// append-only CSV store.
package ledger

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/moneywiz-link/internal/fileutils"
	"fjacquet/moneywiz-link/internal/models"
	"fjacquet/moneywiz-link/internal/txnerr"
)

// Row is one ledger line. Columns are fixed; the header is written exactly
// once, when the file is created.
type Row struct {
	Date      string `csv:"date"`
	Type      string `csv:"type"`
	Amount    string `csv:"amount"`
	Currency  string `csv:"currency"`
	Account   string `csv:"account"`
	ToAccount string `csv:"to_account"`
	Category  string `csv:"category"`
	Payee     string `csv:"payee"`
	Memo      string `csv:"memo"`
	Tags      string `csv:"tags"`
	Save      string `csv:"save"`
}

// RowFromRecord flattens a TransactionRecord into its ledger representation.
func RowFromRecord(rec models.TransactionRecord) Row {
	return Row{
		Date:      rec.DateString(),
		Type:      string(rec.Type),
		Amount:    rec.AmountString(),
		Currency:  rec.Currency,
		Account:   rec.Account,
		ToAccount: rec.ToAccount,
		Category:  rec.Category,
		Payee:     rec.Payee,
		Memo:      rec.Memo,
		Tags:      rec.Tags.String(),
		Save:      rec.SaveString(),
	}
}

// Writer appends records to a ledger file. Each Append is one
// open-append-close cycle so concurrent invocations never share a handle.
type Writer struct {
	path string
}

// NewWriter creates a writer for the given ledger path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the ledger file path.
func (w *Writer) Path() string {
	return w.path
}

// Append adds one row to the ledger, creating the file with its header row
// first when absent. Existing rows are never rewritten.
func (w *Writer) Append(rec models.TransactionRecord) error {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(w.path)); err != nil {
		return &txnerr.StorageWriteError{Path: w.path, Err: err}
	}

	needHeader := true
	if info, err := os.Stat(w.path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &txnerr.StorageWriteError{Path: w.path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	rows := []Row{RowFromRecord(rec)}
	if needHeader {
		err = gocsv.Marshal(&rows, file)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, file)
	}
	if err != nil {
		return &txnerr.StorageWriteError{Path: w.path, Err: err}
	}

	return nil
}

// ReadAll loads every ledger row, for reconciliation and reporting. The
// ledger itself is never modified through this path.
func ReadAll(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	var rows []Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}
	return rows, nil
}
