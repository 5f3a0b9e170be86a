// Package config provides Viper-based two-layer configuration management:
// a mandatory base config.yaml merged with an optional config.local.yaml
// override, plus MONEYWIZ_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/moneywiz-link/internal/txnerr"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Defaults struct {
		Currency        string `mapstructure:"currency" yaml:"currency"`
		Account         string `mapstructure:"account" yaml:"account"`
		Type            string `mapstructure:"type" yaml:"type"`
		Save            bool   `mapstructure:"save" yaml:"save"`
		Timezone        string `mapstructure:"timezone" yaml:"timezone"`
		ExpenseCategory string `mapstructure:"expense_category" yaml:"expense_category"`
		IncomeCategory  string `mapstructure:"income_category" yaml:"income_category"`
	} `mapstructure:"defaults" yaml:"defaults"`

	Paths struct {
		Ledger     string `mapstructure:"ledger" yaml:"ledger"`
		Categories string `mapstructure:"categories" yaml:"categories"`
		Aliases    string `mapstructure:"aliases" yaml:"aliases"`
	} `mapstructure:"paths" yaml:"paths"`

	Link struct {
		Scheme   string `mapstructure:"scheme" yaml:"scheme"`
		AutoOpen bool   `mapstructure:"auto_open" yaml:"auto_open"`
	} `mapstructure:"link" yaml:"link"`

	Reconcile struct {
		AmountTolerance string `mapstructure:"amount_tolerance" yaml:"amount_tolerance"`
		WindowHours     int    `mapstructure:"window_hours" yaml:"window_hours"`
	} `mapstructure:"reconcile" yaml:"reconcile"`
}

// Load reads the base configuration, merges the optional local override and
// applies environment variables. dir may be empty, in which case the standard
// search paths are used. A missing or malformed base file is a ConfigError;
// a missing local override degrades silently to base-only.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(".moneywiz-link")
		v.AddConfigPath("$HOME/.moneywiz-link")
	}

	v.SetEnvPrefix("MONEYWIZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, &txnerr.ConfigError{Reason: "base configuration not found (config.yaml)", Err: err}
		}
		return nil, &txnerr.ConfigError{Reason: "base configuration is malformed", Err: err}
	}

	// Local override: values win key-by-key over the base file.
	v.SetConfigName("config.local")
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &txnerr.ConfigError{Reason: "local override is malformed", Err: err}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &txnerr.ConfigError{Reason: "failed to unmarshal configuration", Err: err}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets the hardcoded system defaults applied when neither the
// base nor the local file defines a key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("defaults.currency", "SGD")
	v.SetDefault("defaults.account", "")
	v.SetDefault("defaults.type", "expense")
	v.SetDefault("defaults.save", false)
	v.SetDefault("defaults.timezone", "Asia/Singapore")
	v.SetDefault("defaults.expense_category", "Shopping/Other")
	v.SetDefault("defaults.income_category", "Other incoming")

	v.SetDefault("paths.ledger", "data/transactions.csv")
	v.SetDefault("paths.categories", "references/categories.yaml")
	v.SetDefault("paths.aliases", "references/category_aliases.yaml")

	v.SetDefault("link.scheme", "moneywiz")
	v.SetDefault("link.auto_open", false)

	v.SetDefault("reconcile.amount_tolerance", "0.01")
	v.SetDefault("reconcile.window_hours", 24)
}

// validateConfig checks the configuration values downstream logic relies on.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &txnerr.ConfigError{Reason: "invalid log level: " + config.Log.Level}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &txnerr.ConfigError{Reason: "invalid log format: " + config.Log.Format + " (must be 'text' or 'json')"}
	}

	switch config.Defaults.Type {
	case "expense", "income", "transfer":
	default:
		return &txnerr.ConfigError{Reason: "invalid default transaction type: " + config.Defaults.Type}
	}

	if _, err := time.LoadLocation(config.Defaults.Timezone); err != nil {
		return &txnerr.ConfigError{Reason: "invalid time zone: " + config.Defaults.Timezone, Err: err}
	}

	if config.Link.Scheme == "" {
		return &txnerr.ConfigError{Reason: "link scheme must not be empty"}
	}

	return nil
}

// Location returns the configured time zone. Validation guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Defaults.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ConfigureLogging builds a logrus logger from the configuration.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
