// Package deeplink serializes transaction records into the external finance
// app's URL scheme. The emitted URL is the real external contract: key names,
// field order and encoding must match the app's documented scheme exactly.
package deeplink

import (
	"net/url"
	"strings"

	"fjacquet/moneywiz-link/internal/models"
)

// builder accumulates key=value pairs in a fixed order, skipping empties so
// an omitted optional field never shows up as key=.
type builder struct {
	pairs []string
}

func (b *builder) add(key, value string) {
	if value == "" {
		return
	}
	b.pairs = append(b.pairs, key+"="+escape(value))
}

// Build serializes a record into <scheme>://<operation>?<query>. Output is
// deterministic: equal records produce byte-identical URLs.
func Build(rec models.TransactionRecord, scheme string) string {
	var b builder

	switch rec.Type {
	case models.TypeTransfer:
		b.add("account", rec.Account)
		b.add("toAccount", rec.ToAccount)
		b.add("amount", rec.AmountString())
	default:
		b.add("account", rec.Account)
		b.add("amount", rec.AmountString())
		b.add("currency", rec.Currency)
		b.add("payee", rec.Payee)
		b.add("category", rec.Category)
		b.add("memo", rec.Memo)
		b.add("tags", rec.Tags.String())
		if rec.DateExplicit {
			b.add("date", rec.DateString())
		}
	}
	b.add("save", rec.SaveString())

	return scheme + "://" + string(rec.Type) + "?" + strings.Join(b.pairs, "&")
}

// escape percent-encodes a query value. The app's parser splits the category
// on slashes after decoding, so slashes, spaces and every reserved character
// must survive as percent escapes; spaces are %20, never +.
func escape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
