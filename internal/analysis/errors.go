package analysis

import (
	"fmt"

	"github.com/jonathan/truthweaver/internal/types"
)

// InputError represents a caller mistake in the analysis request
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", msg)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// Is reports every InputError as types.ErrMalformedInput.
func (e *InputError) Is(target error) bool {
	return target == types.ErrMalformedInput
}
