/*
errors.go - Configuration error types shared across the engine

PURPOSE:
  The schedule and tariff packages both read user-editable stored
  configuration (rotation anchor, weekend pattern text, tariff rates).
  Structural problems in that configuration are the only condition the
  engine treats as an error; everything else degrades to an explicit
  absent value.

ERROR CATEGORIES:
  1. ConfigError - configuration present but structurally invalid
     (unparseable date, unknown letter, non-numeric rate). Surfaced to
     the caller so the affected screen can show "configuration
     unavailable".
  2. Absent classification - NOT an error. A date before the rotation
     anchor, or a missing configuration, is reported as an empty
     result, never as an error value.

USAGE:
  if errors.Is(err, temporal.ErrInvalidConfig) {
      // show "configuration unavailable"
  }
*/
package temporal

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel all configuration errors unwrap to.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError reports a structurally invalid piece of stored configuration.
type ConfigError struct {
	Field  string // e.g. "startDate", "rate:Tarifa 3"
	Value  string // the offending stored value
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config field %s: %s (value %q)", e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// NewConfigError builds a ConfigError for the given field.
func NewConfigError(field, value, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
