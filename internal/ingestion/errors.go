package ingestion

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jonathan/truthweaver/internal/types"
)

// LoadError represents a failure to read or decode transcript input
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// classify tags a file system error with its class: a missing path is
// malformed input, any other failure is a dependency failure.
func classify(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", types.ErrMalformedInput, err)
	}
	return fmt.Errorf("%w: %v", types.ErrDependencyFailure, err)
}
