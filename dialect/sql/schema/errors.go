package schema

import "fmt"

// InspectError is returned when the database schema cannot be inspected.
type InspectError struct {
	Dialect string
	Err     error
}

func (e *InspectError) Error() string {
	return fmt.Sprintf("dialect/sql/schema: inspect %s: %v", e.Dialect, e.Err)
}

func (e *InspectError) Unwrap() error {
	return e.Err
}
