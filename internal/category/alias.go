package category

import (
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/moneywiz-link/internal/fileutils"
	"fjacquet/moneywiz-link/internal/txnerr"
)

type aliasDocument struct {
	Aliases map[string]string `yaml:"aliases"`
}

// AliasMap maps normalized free-form phrases to canonical category paths.
// Lookup is read-only; Add is the single supported mutation and persists
// immediately, since alias learning is an explicit operator action.
type AliasMap struct {
	path    string
	aliases map[string]string
}

// NormalizeKey lowercases a phrase and collapses its whitespace so lookups
// are insensitive to casing and spacing.
func NormalizeKey(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// LoadAliases reads the alias document from a YAML file. A missing file
// yields an empty map; a malformed file is a StorageReadError.
func LoadAliases(path string) (*AliasMap, error) {
	m := &AliasMap{path: path, aliases: make(map[string]string)}

	if !fileutils.FileExists(path) {
		return m, nil
	}

	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}

	var doc aliasDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}

	for phrase, target := range doc.Aliases {
		m.aliases[NormalizeKey(phrase)] = target
	}
	return m, nil
}

// Lookup resolves a phrase to its mapped category path.
func (m *AliasMap) Lookup(phrase string) (string, bool) {
	target, ok := m.aliases[NormalizeKey(phrase)]
	return target, ok
}

// Len returns the number of known aliases.
func (m *AliasMap) Len() int {
	return len(m.aliases)
}

// Add records a phrase → path mapping and writes the whole document back to
// disk. Adding an existing identical mapping is a no-op.
func (m *AliasMap) Add(phrase, target string) error {
	key := NormalizeKey(phrase)
	if key == "" {
		return &txnerr.ValidationError{Invariant: "alias phrase must not be empty"}
	}
	if strings.TrimSpace(target) == "" {
		return &txnerr.ValidationError{Invariant: "alias target must not be empty"}
	}
	if existing, ok := m.aliases[key]; ok && existing == target {
		return nil
	}

	m.aliases[key] = target

	data, err := yaml.Marshal(aliasDocument{Aliases: m.aliases})
	if err != nil {
		return &txnerr.StorageWriteError{Path: m.path, Err: err}
	}
	if err := fileutils.WriteFile(m.path, data, 0644); err != nil {
		return &txnerr.StorageWriteError{Path: m.path, Err: err}
	}
	return nil
}
