package add

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/moneywiz-link/cmd/root"
	"fjacquet/moneywiz-link/internal/config"
	"fjacquet/moneywiz-link/internal/ledger"
	"fjacquet/moneywiz-link/internal/txnerr"
)

// setupEnv prepares a config dir, category tree and alias map in a temp
// directory and loads them into the shared root state.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfgContent := `
defaults:
  currency: SGD
  account: Cash
  timezone: Asia/Singapore
paths:
  ledger: ` + filepath.Join(dir, "transactions.csv") + `
  categories: ` + filepath.Join(dir, "categories.yaml") + `
  aliases: ` + filepath.Join(dir, "aliases.yaml") + `
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfgContent), 0600))

	treeContent := `
categories:
  - name: Food & Life
    children:
      - name: Restaurant
  - name: Shopping
    children:
      - name: Other
  - name: Other incoming
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte(treeContent), 0600))

	aliasContent := `
aliases:
  吃饭: Food & Life/Restaurant
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aliases.yaml"), []byte(aliasContent), 0600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	root.Cfg = cfg
	root.Log = logrus.New()
	root.Log.SetLevel(logrus.ErrorLevel)

	return dir
}

func resetFlags() {
	txType, amount, currency, account, toAccount = "", "", "", "", ""
	rawCategory, payee, memo, description, tags, date, save = "", "", "", "", "", "", ""
	openLink = false
	noLedger = false
}

func runAdd(t *testing.T) (string, error) {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	err := addFunc(Cmd, nil)
	return out.String(), err
}

func TestAddExpenseWithAlias(t *testing.T) {
	dir := setupEnv(t)
	resetFlags()

	amount = "12.30"
	currency = "SGD"
	account = "Cash"
	rawCategory = "吃饭"
	memo = "Dinner"

	out, err := runAdd(t)
	require.NoError(t, err)

	want := "moneywiz://expense?account=Cash&amount=12.30&currency=SGD&category=Food%20%26%20Life%2FRestaurant&memo=Dinner&save=false\n"
	assert.Equal(t, want, out)

	rows, err := ledger.ReadAll(filepath.Join(dir, "transactions.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Food & Life/Restaurant", rows[0].Category)
	assert.Equal(t, "12.30", rows[0].Amount)
}

func TestAddIncomeFallsBackToDefault(t *testing.T) {
	setupEnv(t)
	resetFlags()

	txType = "income"
	amount = "25"
	rawCategory = "卖闲置"
	payee = "Carousell"

	out, err := runAdd(t)
	require.NoError(t, err)

	// Unknown phrase falls back to the configured income default; the URL
	// is still generated
	assert.Contains(t, out, "moneywiz://income?")
	assert.Contains(t, out, "category=Other%20incoming")
	assert.Contains(t, out, "payee=Carousell")
}

func TestAddMissingAmount(t *testing.T) {
	dir := setupEnv(t)
	resetFlags()

	memo = "Dinner"

	out, err := runAdd(t)
	require.Error(t, err)

	var missing *txnerr.MissingFieldError
	assert.True(t, errors.As(err, &missing))

	// No URL emitted and no ledger write happened
	assert.Empty(t, out)
	assert.NoFileExists(t, filepath.Join(dir, "transactions.csv"))
}

func TestAddTransferSameAccount(t *testing.T) {
	dir := setupEnv(t)
	resetFlags()

	txType = "transfer"
	amount = "50"
	account = "Cash"
	toAccount = "Cash"

	out, err := runAdd(t)
	require.Error(t, err)

	var vErr *txnerr.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Empty(t, out)
	assert.NoFileExists(t, filepath.Join(dir, "transactions.csv"))
}

func TestAddTransfer(t *testing.T) {
	setupEnv(t)
	resetFlags()

	txType = "transfer"
	amount = "50"
	account = "Cash"
	toAccount = "DBS"

	out, err := runAdd(t)
	require.NoError(t, err)
	assert.Equal(t, "moneywiz://transfer?account=Cash&toAccount=DBS&amount=50.00&save=false\n", out)
}

func TestAddInvalidSaveFlag(t *testing.T) {
	setupEnv(t)
	resetFlags()

	amount = "5"
	save = "maybe"

	_, err := runAdd(t)
	require.Error(t, err)

	var vErr *txnerr.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestAddNoLedgerSkipsWrite(t *testing.T) {
	dir := setupEnv(t)
	resetFlags()

	amount = "12.30"
	memo = "Dinner"
	noLedger = true

	out, err := runAdd(t)
	require.NoError(t, err)
	assert.Contains(t, out, "moneywiz://expense?")
	assert.NoFileExists(t, filepath.Join(dir, "transactions.csv"))
}

func TestAddDescriptionFillsMemo(t *testing.T) {
	setupEnv(t)
	resetFlags()

	amount = "5"
	description = "Lunch"

	out, err := runAdd(t)
	require.NoError(t, err)
	assert.Contains(t, out, "memo=Lunch")
}
