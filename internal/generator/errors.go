package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilDocument indicates Generate was called without a document tree.
var ErrNilDocument = errors.New("generator: document is required")

// ErrUnknownTarget is the sentinel wrapped by UnknownTargetError.
var ErrUnknownTarget = errors.New("generator: unknown target")

// UnknownTargetError reports an unsupported target name.
type UnknownTargetError struct {
	Name string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("generator: unknown target %q", e.Name)
}

func (e *UnknownTargetError) Unwrap() error { return ErrUnknownTarget }

// ErrFormatDrift is the sentinel wrapped by DriftError.
var ErrFormatDrift = errors.New("generator: output drifts under formatting")

// DriftError reports structural drift detected in strict mode.
type DriftError struct {
	Target Target
	Drift  []string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("generator: %s output drifts under formatting: %s", e.Target, strings.Join(e.Drift, "; "))
}

func (e *DriftError) Unwrap() error { return ErrFormatDrift }
