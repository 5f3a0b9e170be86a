// Package add implements the command that records one transaction and
// prints its deep link.
package add

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/moneywiz-link/cmd/root"
	"fjacquet/moneywiz-link/internal/category"
	"fjacquet/moneywiz-link/internal/deeplink"
	"fjacquet/moneywiz-link/internal/ledger"
	"fjacquet/moneywiz-link/internal/logging"
	"fjacquet/moneywiz-link/internal/normalize"
	"fjacquet/moneywiz-link/internal/opener"
	"fjacquet/moneywiz-link/internal/txnerr"
)

var (
	txType      string
	amount      string
	currency    string
	account     string
	toAccount   string
	rawCategory string
	payee       string
	memo        string
	description string
	tags        string
	date        string
	save        string
	openLink    bool
	noLedger    bool
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction and print its deep link",
	Long: `Record a single transaction: resolve the category, normalize the fields,
append a row to the local CSV ledger and print the moneywiz:// URL on stdout.`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVar(&txType, "type", "", "Transaction type: expense, income or transfer (default from config)")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Transaction amount (required, positive decimal)")
	Cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code (default from config)")
	Cmd.Flags().StringVar(&account, "account", "", "Account name (default from config); source account for transfers")
	Cmd.Flags().StringVar(&toAccount, "to-account", "", "Destination account, transfers only")
	Cmd.Flags().StringVar(&rawCategory, "category", "", "Category phrase or Category/Subcategory path")
	Cmd.Flags().StringVar(&payee, "payee", "", "Payee name")
	Cmd.Flags().StringVarP(&memo, "memo", "m", "", "Free-text memo")
	Cmd.Flags().StringVar(&description, "description", "", "Alias for --memo")
	Cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	Cmd.Flags().StringVar(&date, "date", "", `Transaction time, "yyyy-MM-dd HH:mm:ss" (default: now in the configured zone)`)
	Cmd.Flags().StringVar(&save, "save", "", "true to save immediately in the external app, false to open its entry screen (default from config)")
	Cmd.Flags().BoolVar(&openLink, "open", false, "Open the generated URL with the platform handler")
	Cmd.Flags().BoolVar(&noLedger, "no-ledger", false, "Generate the URL without appending to the ledger")
}

func addFunc(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg

	in := normalize.Input{
		Type:      txType,
		Amount:    amount,
		Currency:  currency,
		Account:   account,
		ToAccount: toAccount,
		Payee:     payee,
		Memo:      memo,
		Tags:      tags,
		Date:      date,
	}
	if in.Memo == "" {
		in.Memo = description
	}

	switch save {
	case "":
	case "true", "false":
		v := save == "true"
		in.Save = &v
	default:
		return &txnerr.ValidationError{Invariant: "save must be true or false"}
	}

	txnType, err := normalize.ResolveType(in, cfg)
	if err != nil {
		return &txnerr.ValidationError{Invariant: err.Error()}
	}

	tree, err := category.LoadTree(cfg.Paths.Categories)
	if err != nil {
		return err
	}
	aliases, err := category.LoadAliases(cfg.Paths.Aliases)
	if err != nil {
		return err
	}

	resolver := category.NewResolver(tree, aliases, category.Defaults{
		Expense: cfg.Defaults.ExpenseCategory,
		Income:  cfg.Defaults.IncomeCategory,
	}, logging.NewLogrusAdapter(root.Log))

	resolution := resolver.Resolve(rawCategory, txnType)
	if resolution.Unresolved() && rawCategory != "" {
		// Soft signal only: the transaction still goes through
		root.Log.Warnf("Category %q not found, using %q", rawCategory, resolution.Path)
	}

	// Validation completes here, before any write happens
	rec, err := normalize.Normalize(in, cfg, resolution.Path, time.Now)
	if err != nil {
		return err
	}

	if !noLedger {
		writer := ledger.NewWriter(cfg.Paths.Ledger)
		if err := writer.Append(rec); err != nil {
			return err
		}
		root.Log.Debugf("Appended %s of %s %s to %s", rec.Type, rec.AmountString(), rec.Currency, writer.Path())
	}

	url := deeplink.Build(rec, cfg.Link.Scheme)
	fmt.Fprintln(cmd.OutOrStdout(), url)

	if openLink || cfg.Link.AutoOpen {
		if err := opener.Open(url); err != nil {
			root.Log.Warnf("Failed to auto-open URL: %v", err)
		}
	}

	return nil
}
