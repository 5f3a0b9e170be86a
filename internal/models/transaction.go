// Package models defines the canonical transaction record shared by the
// normalizer, the ledger writer and the URL generator.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/moneywiz-link/internal/dateutils"
)

// TransactionType is the kind of transaction being recorded.
type TransactionType string

const (
	// TypeExpense is money leaving an account towards a payee.
	TypeExpense TransactionType = "expense"
	// TypeIncome is money arriving into an account.
	TypeIncome TransactionType = "income"
	// TypeTransfer moves money between two accounts and carries no category.
	TypeTransfer TransactionType = "transfer"
)

// ParseTransactionType parses a raw type string, case-insensitively.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "expense":
		return TypeExpense, nil
	case "income":
		return TypeIncome, nil
	case "transfer":
		return TypeTransfer, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q (expected expense, income or transfer)", raw)
	}
}

// TagList is an ordered, de-duplicated set of short tag strings.
type TagList []string

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping duplicates while preserving first-seen order.
func ParseTags(raw string) TagList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tags TagList
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// String joins the tags with commas for CSV and URL output.
func (t TagList) String() string {
	return strings.Join(t, ",")
}

// TransactionRecord is the canonical, fully normalized transaction. It is
// constructed once by the normalizer and never mutated afterwards.
type TransactionRecord struct {
	Type      TransactionType
	Amount    decimal.Decimal
	Currency  string
	Account   string
	ToAccount string
	Category  string
	Payee     string
	Memo      string
	Tags      TagList
	Date      time.Time
	// DateExplicit distinguishes a caller-supplied date from the stamped
	// default. Only explicit dates are serialized into the deep link.
	DateExplicit bool
	Save         bool
}

// AmountString renders the amount with two decimal places, the precision the
// external scheme expects.
func (r TransactionRecord) AmountString() string {
	return r.Amount.StringFixed(2)
}

// DateString renders the timestamp with second precision.
func (r TransactionRecord) DateString() string {
	return dateutils.FormatDateTime(r.Date)
}

// SaveString renders the save flag as the literal strings true/false.
func (r TransactionRecord) SaveString() string {
	if r.Save {
		return "true"
	}
	return "false"
}
