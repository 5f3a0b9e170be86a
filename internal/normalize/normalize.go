// Package normalize validates partially filled transaction input and builds
// the canonical TransactionRecord. Validation always completes before any
// side effect elsewhere in the pipeline.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/moneywiz-link/internal/config"
	"fjacquet/moneywiz-link/internal/dateutils"
	"fjacquet/moneywiz-link/internal/models"
	"fjacquet/moneywiz-link/internal/txnerr"
)

// Input is the partially filled field set supplied by the caller, typically
// parsed out of a chat message. Empty strings mean "not provided"; Save is a
// tri-state so an explicit --save false wins over the configured default.
type Input struct {
	Type      string
	Amount    string
	Currency  string
	Account   string
	ToAccount string
	Payee     string
	Memo      string
	Tags      string
	Date      string
	Save      *bool
}

// ResolveType determines the transaction type from the input, falling back
// to the configured default type when the input leaves it blank.
func ResolveType(in Input, cfg *config.Config) (models.TransactionType, error) {
	raw := in.Type
	if strings.TrimSpace(raw) == "" {
		raw = cfg.Defaults.Type
	}
	return models.ParseTransactionType(raw)
}

// Normalize builds a complete TransactionRecord from the input, the effective
// configuration and the already-resolved category path. now supplies the
// timestamp stamped when no date was given; pass time.Now-in-zone in
// production and a fixed clock in tests.
func Normalize(in Input, cfg *config.Config, category string, now func() time.Time) (models.TransactionRecord, error) {
	txType, err := ResolveType(in, cfg)
	if err != nil {
		return models.TransactionRecord{}, &txnerr.ValidationError{Invariant: err.Error()}
	}

	amount, err := parseAmount(in.Amount)
	if err != nil {
		return models.TransactionRecord{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = strings.ToUpper(cfg.Defaults.Currency)
	}

	account := stripWhitespace(firstNonEmpty(in.Account, cfg.Defaults.Account))
	if account == "" {
		return models.TransactionRecord{}, &txnerr.ValidationError{Invariant: "account is required"}
	}

	toAccount := stripWhitespace(in.ToAccount)

	switch txType {
	case models.TypeTransfer:
		if toAccount == "" {
			return models.TransactionRecord{}, &txnerr.ValidationError{Invariant: "transfer requires toAccount"}
		}
		if toAccount == account {
			return models.TransactionRecord{}, &txnerr.ValidationError{Invariant: "transfer requires distinct accounts"}
		}
		// Transfers never carry a category
		category = ""
	default:
		if toAccount != "" {
			return models.TransactionRecord{}, &txnerr.ValidationError{Invariant: "toAccount is only valid for transfers"}
		}
	}

	date, explicit, err := resolveDate(in.Date, cfg.Location(), now)
	if err != nil {
		return models.TransactionRecord{}, err
	}

	save := cfg.Defaults.Save
	if in.Save != nil {
		save = *in.Save
	}

	return models.TransactionRecord{
		Type:         txType,
		Amount:       amount,
		Currency:     currency,
		Account:      account,
		ToAccount:    toAccount,
		Category:     category,
		Payee:        strings.TrimSpace(in.Payee),
		Memo:         strings.TrimSpace(in.Memo),
		Tags:         models.ParseTags(in.Tags),
		Date:         date,
		DateExplicit: explicit,
		Save:         save,
	}, nil
}

// parseAmount enforces the one mandatory-no-fallback rule: a missing amount
// is a MissingFieldError the caller should turn into a clarifying question.
func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, &txnerr.MissingFieldError{Field: "amount"}
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &txnerr.ValidationError{Invariant: "amount must be a decimal number"}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &txnerr.ValidationError{Invariant: "amount must be positive"}
	}
	return amount, nil
}

func resolveDate(raw string, loc *time.Location, now func() time.Time) (time.Time, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return now().In(loc).Truncate(time.Second), false, nil
	}

	date, err := dateutils.ParseInLocation(raw, loc)
	if err != nil {
		return time.Time{}, false, &txnerr.ValidationError{Invariant: "date must match yyyy-MM-dd HH:mm:ss"}
	}
	return date, true, nil
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
