package esthetic

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNilRegistry is returned when a widget is built without a Registry.
	ErrNilRegistry = errors.New("esthetic: nil registry")

	// ErrUnknownWidget is returned when an id names no registered widget.
	ErrUnknownWidget = errors.New("esthetic: unknown widget")

	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("esthetic: invalid config")
)

// ConstructionError reports why a widget could not be built from its source
// control. Construction failures are never retried.
type ConstructionError struct {
	Op  string // what was being built, e.g. "parse", "enhance"
	Err error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("esthetic: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("esthetic: %s", e.Op)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// IsConstructionError checks if err is or wraps a *ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}
