// Package category loads the user-owned category taxonomy and resolves
// free-form category phrases to canonical Category/Subcategory paths.
package category

import (
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/moneywiz-link/internal/fileutils"
	"fjacquet/moneywiz-link/internal/txnerr"
)

// Node is one entry of the nested category document.
type Node struct {
	Name     string `yaml:"name"`
	Children []Node `yaml:"children,omitempty"`
}

type treeDocument struct {
	Categories []Node `yaml:"categories"`
}

// Tree is the read-only set of valid slash-delimited category paths.
type Tree struct {
	paths []string
	set   map[string]struct{}
}

// NewTree builds a tree from a flat list of paths, dropping duplicates while
// preserving order.
func NewTree(paths []string) *Tree {
	t := &Tree{set: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := t.set[p]; ok {
			continue
		}
		t.set[p] = struct{}{}
		t.paths = append(t.paths, p)
	}
	return t
}

// LoadTree reads the category document from a YAML file. A missing file is
// not an error and yields an empty tree, so the tool stays usable before a
// taxonomy has been exported. A malformed file is a StorageReadError.
func LoadTree(path string) (*Tree, error) {
	if !fileutils.FileExists(path) {
		return NewTree(nil), nil
	}

	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}

	var doc treeDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &txnerr.StorageReadError{Path: path, Err: err}
	}

	return NewTree(Flatten(doc.Categories)), nil
}

// Flatten walks the nested nodes and collects every leaf path, plus every
// top-level category name so single-level categories stay addressable.
func Flatten(nodes []Node) []string {
	var out []string
	for _, node := range nodes {
		out = append(out, walk(node, "")...)
	}
	for _, node := range nodes {
		if name := strings.TrimSpace(node.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func walk(node Node, prefix string) []string {
	name := strings.TrimSpace(node.Name)
	if name == "" {
		return nil
	}
	path := name
	if prefix != "" {
		path = prefix + "/" + name
	}
	if len(node.Children) == 0 {
		return []string{path}
	}
	var out []string
	for _, child := range node.Children {
		out = append(out, walk(child, path)...)
	}
	return out
}

// Contains reports whether the exact path is part of the taxonomy.
func (t *Tree) Contains(path string) bool {
	_, ok := t.set[path]
	return ok
}

// Paths returns all known paths in stable order.
func (t *Tree) Paths() []string {
	return t.paths
}

// Len returns the number of known paths.
func (t *Tree) Len() int {
	return len(t.paths)
}
