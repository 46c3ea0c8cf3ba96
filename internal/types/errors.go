// Package types provides type definitions for structured data used throughout truthweaver.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "errors"

// Error classes shared across packages. A missing signal in a transcript is
// never an error; these cover caller mistakes and failing collaborators.
var (
	// ErrMalformedInput marks errors caused by the caller's input.
	ErrMalformedInput = errors.New("malformed input")
	// ErrDependencyFailure marks errors raised by an external model or the file system.
	ErrDependencyFailure = errors.New("dependency failure")
)
