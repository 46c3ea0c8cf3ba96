package transcription

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jonathan/truthweaver/internal/types"
)

// DependencyError represents a failure of the speech model or the file system
type DependencyError struct {
	Backend string
	Message string
	Cause   error
}

func (e *DependencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

func (e *DependencyError) Unwrap() error {
	return e.Cause
}

// Is reports every DependencyError as types.ErrDependencyFailure.
func (e *DependencyError) Is(target error) bool {
	return target == types.ErrDependencyFailure
}

// mediaError classifies a failure to access a media file. A missing file is
// caller input; anything else is a file system failure.
func mediaError(backend, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: media file %s: %v", types.ErrMalformedInput, path, err)
	}
	return &DependencyError{Backend: backend, Message: "read media file " + path, Cause: err}
}
