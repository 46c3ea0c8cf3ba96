package vocabulary

import (
	"fmt"

	"github.com/jonathan/truthweaver/internal/types"
)

// LoadError represents an error reading or decoding a vocabulary file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports every LoadError as types.ErrMalformedInput.
func (e *LoadError) Is(target error) bool {
	return target == types.ErrMalformedInput
}

// InvalidError represents a vocabulary that decoded but cannot be used
type InvalidError struct {
	Field   string
	Message string
}

func (e *InvalidError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid vocabulary: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid vocabulary: %s", e.Message)
}

// Is reports every InvalidError as types.ErrMalformedInput.
func (e *InvalidError) Is(target error) bool {
	return target == types.ErrMalformedInput
}
