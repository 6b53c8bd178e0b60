// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors. Construction-time failures wrap one of these
// so callers can classify them with errors.Is.
var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoRules       = fmt.Errorf("%w: no rules registered", ErrInvalidConfig)

	// Data errors.
	ErrTypeConstraint = errors.New("type constraint violation")

	// Combinator errors.
	ErrNotCondition = errors.New("operand is not a condition")
)

// IsConfigError reports whether err is a construction-time configuration
// failure (including the zero-rules case).
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
