// Package txnerr defines the error types produced by the transaction pipeline.
package txnerr

import "fmt"

// ConfigError represents a missing or malformed base configuration.
// A missing local override is never a ConfigError; only the base file is mandatory.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MissingFieldError represents a required field that has no default and was
// not supplied. The caller is expected to prompt the user for it rather than
// treat this as fatal to the conversation.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// ValidationError represents a violated transaction invariant. Invariant names
// the rule that failed, e.g. "amount must be positive".
type ValidationError struct {
	Invariant string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Invariant)
}

// StorageReadError represents an unreadable or malformed input file
// (configuration, category tree, alias map, ledger or export CSV).
type StorageReadError struct {
	Path string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// StorageWriteError represents a ledger or alias file that could not be written.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
