// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/moneywiz-link/internal/config"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the effective configuration, loaded before any subcommand runs
	Cfg *config.Config

	// ConfigDir optionally points at the directory holding config.yaml
	ConfigDir string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "moneywiz-link",
		Short: "Record transactions to a local CSV ledger and generate MoneyWiz deep links.",
		Long: `moneywiz-link turns parsed transaction fields into a normalized row in a
local append-only CSV ledger and a moneywiz:// deep link that creates the
transaction in the external app when opened.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(ConfigDir)
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init initializes the root command flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&ConfigDir, "config-dir", "c", "", "Directory containing config.yaml (default: standard search paths)")
}
