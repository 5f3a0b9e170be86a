// Package alias implements the command that records category aliases, the
// one explicit mutation the alias map supports.
package alias

import (
	"github.com/spf13/cobra"

	"fjacquet/moneywiz-link/cmd/root"
	"fjacquet/moneywiz-link/internal/category"
	"fjacquet/moneywiz-link/internal/txnerr"
)

// Cmd represents the alias command
var Cmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage category aliases",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var addCmd = &cobra.Command{
	Use:   "add <phrase> <category-path>",
	Short: "Map a free-form phrase to a canonical category path",
	Long: `Record that a phrase like "吃饭" should resolve to a canonical path like
"Food & Life/Restaurant". The target must exist in the category tree when one
is configured.`,
	Args: cobra.ExactArgs(2),
	RunE: aliasAddFunc,
}

func init() {
	Cmd.AddCommand(addCmd)
}

func aliasAddFunc(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg
	phrase, target := args[0], args[1]

	tree, err := category.LoadTree(cfg.Paths.Categories)
	if err != nil {
		return err
	}
	// With an empty tree there is nothing to validate against
	if tree.Len() > 0 && !tree.Contains(target) {
		return &txnerr.ValidationError{Invariant: "alias target must be an existing category path"}
	}

	aliases, err := category.LoadAliases(cfg.Paths.Aliases)
	if err != nil {
		return err
	}
	if err := aliases.Add(phrase, target); err != nil {
		return err
	}

	root.Log.Infof("Learned alias %q -> %q", phrase, target)
	return nil
}
