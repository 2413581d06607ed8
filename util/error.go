package util

import (
	"errors"
	"strings"
)

// -----------------------------------------------------------------------------

type extendedError struct {
	message string
	err     error
}

// -----------------------------------------------------------------------------

// NewExtendedError creates a new error that wraps an error and includes the given message.
func NewExtendedError(err error, message string) error {
	return &extendedError{
		message: message,
		err:     err,
	}
}

// Error returns the message followed by the chain of wrapped errors, each one enclosed in brackets.
func (w *extendedError) Error() string {
	sb := strings.Builder{}
	_, _ = sb.WriteString(w.message)

	err := w.err
	for err != nil {
		var childW *extendedError

		_, _ = sb.WriteString(" [err=")
		if errors.As(err, &childW) {
			_, _ = sb.WriteString(childW.message)
			err = childW.err
		} else {
			_, _ = sb.WriteString(err.Error())
			err = nil
		}
		_, _ = sb.WriteString("]")
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (w *extendedError) Unwrap() error {
	return w.err
}
