package deeplink

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/moneywiz-link/internal/models"
)

func expenseRecord() models.TransactionRecord {
	return models.TransactionRecord{
		Type:     models.TypeExpense,
		Amount:   decimal.RequireFromString("12.30"),
		Currency: "SGD",
		Account:  "Cash",
		Category: "Food & Life/Restaurant",
		Memo:     "Dinner",
		Date:     time.Date(2026, 8, 23, 19, 30, 0, 0, time.UTC),
	}
}

func TestBuildExpense(t *testing.T) {
	got := Build(expenseRecord(), "moneywiz")
	want := "moneywiz://expense?account=Cash&amount=12.30&currency=SGD&category=Food%20%26%20Life%2FRestaurant&memo=Dinner&save=false"
	assert.Equal(t, want, got)
}

func TestBuildDeterministic(t *testing.T) {
	first := Build(expenseRecord(), "moneywiz")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(expenseRecord(), "moneywiz"))
	}
}

func TestBuildOmitsEmptyOptionals(t *testing.T) {
	rec := models.TransactionRecord{
		Type:    models.TypeIncome,
		Amount:  decimal.RequireFromString("25"),
		Account: "Cash",
		Payee:   "Carousell",
	}

	got := Build(rec, "moneywiz")
	assert.Equal(t, "moneywiz://income?account=Cash&amount=25.00&payee=Carousell&save=false", got)
	assert.NotContains(t, got, "currency=")
	assert.NotContains(t, got, "category=")
	assert.NotContains(t, got, "memo=")
	assert.NotContains(t, got, "=&")
}

func TestBuildRequiredKeysAlwaysPresent(t *testing.T) {
	got := Build(expenseRecord(), "moneywiz")
	assert.Contains(t, got, "account=")
	assert.Contains(t, got, "amount=")

	transfer := models.TransactionRecord{
		Type:      models.TypeTransfer,
		Amount:    decimal.RequireFromString("50"),
		Account:   "Cash",
		ToAccount: "DBS",
	}
	got = Build(transfer, "moneywiz")
	assert.Equal(t, "moneywiz://transfer?account=Cash&toAccount=DBS&amount=50.00&save=false", got)
}

func TestBuildDateOnlyWhenExplicit(t *testing.T) {
	rec := expenseRecord()
	assert.NotContains(t, Build(rec, "moneywiz"), "date=")

	rec.DateExplicit = true
	got := Build(rec, "moneywiz")
	assert.Contains(t, got, "date=2026-08-23%2019%3A30%3A00")
}

// A category path with spaces and a slash must survive encode → decode exactly.
func TestCategoryRoundTrip(t *testing.T) {
	got := Build(expenseRecord(), "moneywiz")

	query := got[strings.Index(got, "?")+1:]
	values, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "Food & Life/Restaurant", values.Get("category"))
}

func TestBuildSaveLiteral(t *testing.T) {
	rec := expenseRecord()
	rec.Save = true
	assert.True(t, strings.HasSuffix(Build(rec, "moneywiz"), "&save=true"))
}

func TestBuildUnicodeMemo(t *testing.T) {
	rec := expenseRecord()
	rec.Memo = "吃饭"
	got := Build(rec, "moneywiz")

	query := got[strings.Index(got, "?")+1:]
	values, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "吃饭", values.Get("memo"))
}
