package schemavalidations

import (
	"errors"
	"fmt"
)

// ErrDeclined is returned when the registry declines to derive the rules of
// an entity.
var ErrDeclined = errors.New("schemavalidations: derivation declined")

// Reasons for declining derivation.
const (
	ReasonAutoCreateOff = "auto_create is off"
	ReasonAbstract      = "entity is abstract"
	ReasonAnonymous     = "entity has no name"
	ReasonNoTable       = "table does not exist"
)

// DeclinedError is returned by Registry.Load when an entity derives no
// rules.
type DeclinedError struct {
	entity string
	reason string
}

// Error implements the error interface.
func (e *DeclinedError) Error() string {
	if e.entity == "" {
		return fmt.Sprintf("schemavalidations: derivation declined: %s", e.reason)
	}
	return fmt.Sprintf("schemavalidations: derivation declined for %s: %s", e.entity, e.reason)
}

// Is reports whether the target error matches ErrDeclined.
func (e *DeclinedError) Is(err error) bool {
	return err == ErrDeclined
}

// Entity returns the name of the declined entity.
func (e *DeclinedError) Entity() string {
	return e.entity
}

// Reason returns why derivation was declined.
func (e *DeclinedError) Reason() string {
	return e.reason
}

// NewDeclinedError returns a new DeclinedError.
func NewDeclinedError(entity, reason string) *DeclinedError {
	return &DeclinedError{entity: entity, reason: reason}
}

// IsDeclined returns a boolean indicating whether the error is a declined
// error.
func IsDeclined(err error) bool {
	if err == nil {
		return false
	}
	var e *DeclinedError
	return errors.As(err, &e)
}
