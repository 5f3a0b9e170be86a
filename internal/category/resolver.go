package category

import (
	"strings"

	"fjacquet/moneywiz-link/internal/logging"
	"fjacquet/moneywiz-link/internal/models"
)

// Source identifies which resolution stage produced the category path.
type Source string

const (
	// SourceExact means the raw string is already a known path.
	SourceExact Source = "exact"
	// SourceAlias means an alias mapped the phrase to a known path.
	SourceAlias Source = "alias"
	// SourceSuffix means a single-segment phrase matched exactly one
	// subcategory by suffix.
	SourceSuffix Source = "suffix"
	// SourceDefault means the type-aware fallback category was used.
	SourceDefault Source = "default"
	// SourcePassthrough means the raw text was kept unchanged because
	// nothing matched and no fallback was configured.
	SourcePassthrough Source = "passthrough"
	// SourceNone means the transaction carries no category (transfers,
	// or empty input with no configured fallback).
	SourceNone Source = "none"
)

// Resolution is the outcome of resolving a raw category phrase.
type Resolution struct {
	Path   string
	Source Source
}

// Unresolved reports whether the phrase failed to match the taxonomy. This is
// the soft signal callers surface as a warning; it is never fatal.
func (r Resolution) Unresolved() bool {
	return r.Source == SourceDefault || r.Source == SourcePassthrough
}

// Defaults holds the type-aware fallback categories from configuration.
type Defaults struct {
	Expense string
	Income  string
}

func (d Defaults) forType(txType models.TransactionType) string {
	switch txType {
	case models.TypeExpense:
		return d.Expense
	case models.TypeIncome:
		return d.Income
	default:
		return ""
	}
}

// Resolver resolves free-form category phrases against a taxonomy and alias
// map. It holds only read-only state and never mutates the alias map.
type Resolver struct {
	tree     *Tree
	aliases  *AliasMap
	defaults Defaults
	log      logging.Logger
}

// NewResolver builds a resolver. A nil logger discards resolution traces.
func NewResolver(tree *Tree, aliases *AliasMap, defaults Defaults, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{tree: tree, aliases: aliases, defaults: defaults, log: log}
}

// Resolve maps a raw category phrase to a Resolution. Stages run in order and
// the first match wins: exact path, alias, unique suffix, type default,
// passthrough. Transfers never carry a category.
func (r *Resolver) Resolve(raw string, txType models.TransactionType) Resolution {
	if txType == models.TypeTransfer {
		return Resolution{Source: SourceNone}
	}

	phrase := strings.TrimSpace(raw)

	if phrase != "" {
		if r.tree.Contains(phrase) {
			r.log.Debug("category resolved", logging.Field{Key: "stage", Value: SourceExact}, logging.Field{Key: "path", Value: phrase})
			return Resolution{Path: phrase, Source: SourceExact}
		}

		if target, ok := r.aliases.Lookup(phrase); ok {
			// An alias target that left the taxonomy is stale; fall through.
			if r.tree.Contains(target) {
				r.log.Debug("category resolved", logging.Field{Key: "stage", Value: SourceAlias}, logging.Field{Key: "path", Value: target})
				return Resolution{Path: target, Source: SourceAlias}
			}
			r.log.Warn("alias target not in category tree",
				logging.Field{Key: "phrase", Value: phrase},
				logging.Field{Key: "target", Value: target})
		}

		if path, ok := r.suffixMatch(phrase); ok {
			r.log.Debug("category resolved", logging.Field{Key: "stage", Value: SourceSuffix}, logging.Field{Key: "path", Value: path})
			return Resolution{Path: path, Source: SourceSuffix}
		}
	}

	if fallback := r.defaults.forType(txType); fallback != "" {
		return Resolution{Path: fallback, Source: SourceDefault}
	}

	if phrase != "" {
		return Resolution{Path: phrase, Source: SourcePassthrough}
	}

	return Resolution{Source: SourceNone}
}

// suffixMatch resolves a single-segment phrase like "coffee" to a full path
// like "Food & Life/Coffee" when exactly one taxonomy entry ends in it.
func (r *Resolver) suffixMatch(phrase string) (string, bool) {
	if strings.Contains(phrase, "/") {
		return "", false
	}

	low := strings.ToLower(phrase)
	var hits []string
	for _, path := range r.tree.Paths() {
		pl := strings.ToLower(path)
		if pl == low || strings.HasSuffix(pl, "/"+low) {
			hits = append(hits, path)
		}
	}
	if len(hits) == 1 {
		return hits[0], true
	}
	return "", false
}
