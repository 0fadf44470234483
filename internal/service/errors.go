package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when a source file has an unrecognized extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyContent is returned when a source file yields no usable text.
	ErrEmptyContent = errors.New("empty content")
	// ErrIndexUnavailable is returned when the vector store cannot be reached.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrExternalService is returned when an embedding or generation call fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
