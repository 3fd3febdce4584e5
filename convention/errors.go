package convention

import (
	"errors"
	"fmt"
)

// ErrUnknownConvention is the sentinel wrapped by UnknownConventionError so
// callers can match with errors.Is.
var ErrUnknownConvention = errors.New("convention: unknown convention")

// UnknownConventionError reports a built-in lookup for a name that is not
// registered. The offending name is embedded in the message and never
// substituted with a default.
type UnknownConventionError struct {
	Name string
}

func (e *UnknownConventionError) Error() string {
	return fmt.Sprintf("convention: unknown convention %q", e.Name)
}

func (e *UnknownConventionError) Unwrap() error {
	return ErrUnknownConvention
}
