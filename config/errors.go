package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every *Error.
var ErrInvalidConfig = errors.New("schemavalidations: invalid configuration")

// Error reports a malformed configuration option.
type Error struct {
	Entity  string // Entity the option was given for, empty for defaults
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	where := "default"
	if e.Entity != "" {
		where = "entity " + e.Entity
	}
	if e.Value != nil {
		return fmt.Sprintf("schemavalidations: config error for %q in %s (value: %v): %s", e.Option, where, e.Value, e.Message)
	}
	return fmt.Sprintf("schemavalidations: config error for %q in %s: %s", e.Option, where, e.Message)
}

// Is reports whether the target matches ErrInvalidConfig.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidConfig
}
