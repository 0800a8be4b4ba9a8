package domain

import (
	"errors"
	"fmt"
)

// ErrLookupUnavailable indicates the provider lookup failed or timed out.
// Matching treats the affected mention as no_match and continues.
var ErrLookupUnavailable = errors.New("provider lookup unavailable")

// ConfigError reports invalid configuration. It is fatal at startup; the
// pipeline must not be constructed from a config that fails validation.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Message)
}

// ValidationError reports malformed per-call input. The caller can skip the
// offending message and continue with the next one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}
