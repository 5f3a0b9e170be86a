package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fjacquet/moneywiz-link/cmd/add"
	"fjacquet/moneywiz-link/cmd/alias"
	"fjacquet/moneywiz-link/cmd/reconcile"
	"fjacquet/moneywiz-link/cmd/root"
)

func init() {
	// 1. Load environment variables silently before anything logs
	loadEnvSilently()

	// 2. Bootstrap the global log level so early logging respects it; the
	//    configured level takes over once the config file is loaded
	configureLogLevel()

	// 3. Initialize the root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(reconcile.Cmd)
	root.Cmd.AddCommand(alias.Cmd)
}

// loadEnvSilently loads environment variables from a .env file if one exists
func loadEnvSilently() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// configureLogLevel sets the global logrus level from LOG_LEVEL
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
