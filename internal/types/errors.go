// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// InvalidInputError represents a structural invariant violation detected at
// construction time. It identifies the offending entity and rule.
type InvalidInputError struct {
	Entity  string
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s: %s", e.Entity, e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}
