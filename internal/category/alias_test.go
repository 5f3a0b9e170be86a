package category

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "split bill", NormalizeKey("  Split   Bill "))
	assert.Equal(t, "吃饭", NormalizeKey("吃饭"))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "aliases.yaml")
	writeFile(t, file, `
aliases:
  吃饭: Food & Life/Restaurant
  "Split Bill": Split bill
`)

	aliases, err := LoadAliases(file)
	require.NoError(t, err)

	target, ok := aliases.Lookup("吃饭")
	assert.True(t, ok)
	assert.Equal(t, "Food & Life/Restaurant", target)

	// Lookup is case and whitespace insensitive
	target, ok = aliases.Lookup(" split  bill ")
	assert.True(t, ok)
	assert.Equal(t, "Split bill", target)

	_, ok = aliases.Lookup("unknown")
	assert.False(t, ok)
}

func TestLoadAliasesMissingFile(t *testing.T) {
	aliases, err := LoadAliases(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, aliases.Len())
}

func TestAddPersists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "aliases.yaml")

	aliases, err := LoadAliases(file)
	require.NoError(t, err)

	err = aliases.Add("咖啡", "Food & Life/Coffee")
	require.NoError(t, err)

	// Reload from disk and verify the round-trip
	reloaded, err := LoadAliases(file)
	require.NoError(t, err)
	target, ok := reloaded.Lookup("咖啡")
	assert.True(t, ok)
	assert.Equal(t, "Food & Life/Coffee", target)

	// Re-adding the identical mapping is a no-op
	err = aliases.Add("咖啡", "Food & Life/Coffee")
	assert.NoError(t, err)
}

func TestAddRejectsEmpty(t *testing.T) {
	aliases, err := LoadAliases(filepath.Join(t.TempDir(), "aliases.yaml"))
	require.NoError(t, err)

	assert.Error(t, aliases.Add("", "Food & Life/Coffee"))
	assert.Error(t, aliases.Add("coffee", " "))
}
