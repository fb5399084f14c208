package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrRootNotFound        = errors.New("root not found")
	ErrNotDirectory        = errors.New("not a directory")
	ErrFilterOutsideRoot   = errors.New("filter is outside the root")
	ErrRendererUnavailable = errors.New("renderer unavailable")
	ErrDocumentNotFound    = errors.New("document not found")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RootError is a fatal problem with the scan root or path filter
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("cannot analyze %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// RenderError reports that an image could not be produced from a diagram source.
// It is a degraded condition, never fatal.
type RenderError struct {
	Source string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render %s: %v", e.Source, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
